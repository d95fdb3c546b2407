package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"unidash/internal/config"
	"unidash/internal/handler"
	"unidash/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	leadHandler *handler.LeadHandler,
	clientHandler *handler.ClientHandler,
	brokerHandler *handler.BrokerHandler,
	analysisHandler *handler.AnalysisHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require JWT authentication and a live session)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), sessionMiddleware(authService))

	secured.POST("/auth/logout", authHandler.Logout)
	secured.GET("/me", authHandler.Me)

	// Lead tenant routes
	secured.GET("/leads", leadHandler.List)
	secured.GET("/leads/:id", leadHandler.Get)
	secured.POST("/leads", leadHandler.Create)
	secured.PUT("/leads/:id", leadHandler.Update)
	secured.DELETE("/leads/:id", leadHandler.Delete)

	// CPA tenant routes
	secured.GET("/clients", clientHandler.List)
	secured.GET("/clients/:id", clientHandler.Get)
	secured.POST("/clients", clientHandler.Create)
	secured.PUT("/clients/:id", clientHandler.Update)
	secured.DELETE("/clients/:id", clientHandler.Delete)

	// Prop tenant routes
	secured.GET("/brokers", brokerHandler.List)
	secured.GET("/brokers/:id", brokerHandler.Get)
	secured.POST("/brokers", brokerHandler.Create)
	secured.PUT("/brokers/:id", brokerHandler.Update)
	secured.DELETE("/brokers/:id", brokerHandler.Delete)

	// AI analysis routes
	secured.GET("/analysis/leads", analysisHandler.Leads)
	secured.GET("/analysis/financials", analysisHandler.Financials)
	secured.GET("/analysis/brokers", analysisHandler.Brokers)
	secured.GET("/analysis/unified", analysisHandler.Unified)
}

// sessionMiddleware resolves the session identity behind the bearer token and
// stores it in the request context. Tokens whose session was destroyed by
// logout are rejected even if the JWT itself is still valid.
func sessionMiddleware(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token := strings.TrimPrefix(header, "Bearer ")
			session, err := authService.GetSession(c.Request().Context(), token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired session")
			}
			c.Set("session", session)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
