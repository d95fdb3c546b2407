package main

import (
	"log"
	"net/http"

	_ "unidash/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"unidash/internal/ai"
	"unidash/internal/auth"
	"unidash/internal/cache"
	"unidash/internal/config"
	"unidash/internal/db"
	"unidash/internal/handler"
	"unidash/internal/model"
	"unidash/internal/repository"
	"unidash/internal/router"
	"unidash/internal/service"
)

// @title Unified Dashboard API
// @version 1.0
// @description Multi-tenant dashboard API with lead, CPA and prop broker verticals, JWT authentication and AI-backed reports.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	// Connect the three tenant databases in their fixed search order.
	tenants := make([]service.TenantUsers, 0, len(cfg.Tenants))
	tenantDBs := make(map[string]*repoSet, len(cfg.Tenants))
	for _, tc := range cfg.Tenants {
		gormDB, err := db.NewMySQL(tc.Tag, tc.DSN)
		if err != nil {
			log.Fatalf("database init (%s): %v", tc.Tag, err)
		}
		if err := gormDB.AutoMigrate(&model.User{}); err != nil {
			log.Fatalf("auto-migrate users (%s): %v", tc.Tag, err)
		}

		set := &repoSet{users: repository.NewUserRepository(gormDB)}
		switch tc.Tag {
		case "lead":
			if err := gormDB.AutoMigrate(&model.Lead{}); err != nil {
				log.Fatalf("auto-migrate leads: %v", err)
			}
			set.leads = repository.NewLeadRepository(gormDB)
		case "cpa":
			if err := gormDB.AutoMigrate(&model.Client{}); err != nil {
				log.Fatalf("auto-migrate clients: %v", err)
			}
			set.clients = repository.NewClientRepository(gormDB)
		case "prop":
			if err := gormDB.AutoMigrate(&model.Broker{}); err != nil {
				log.Fatalf("auto-migrate brokers: %v", err)
			}
			set.brokers = repository.NewBrokerRepository(gormDB)
		}

		tenantDBs[tc.Tag] = set
		tenants = append(tenants, service.TenantUsers{Tag: tc.Tag, Users: set.users})
	}

	cacheStore := cache.NewFailover(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.MemoryCacheSize)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheStore)
	limiter := auth.NewRateLimiter(cfg.MaxLoginAttempts, cfg.LockoutWindow)

	// Initialize inference client
	aiClient := ai.NewClient(ai.Options{
		Endpoint:    cfg.AIEndpoint,
		APIKey:      cfg.AIKey,
		Model:       cfg.AIModel,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
		Timeout:     cfg.AITimeout,
		CacheTTL:    cfg.AICacheTTL,
	}, cacheStore)

	// Initialize services
	authService := service.NewAuthService(tenants, jwtService, sessionStore, limiter)
	leadService := service.NewLeadService(tenantDBs["lead"].leads, cacheStore)
	clientService := service.NewClientService(tenantDBs["cpa"].clients, cacheStore)
	brokerService := service.NewBrokerService(tenantDBs["prop"].brokers, cacheStore)
	analysisService := service.NewAnalysisService(aiClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	leadHandler := handler.NewLeadHandler(leadService, authService)
	clientHandler := handler.NewClientHandler(clientService, authService)
	brokerHandler := handler.NewBrokerHandler(brokerService, authService)
	analysisHandler := handler.NewAnalysisHandler(analysisService, leadService, clientService, brokerService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		leadHandler,
		clientHandler,
		brokerHandler,
		analysisHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// repoSet groups the repositories backed by one tenant database.
type repoSet struct {
	users   repository.UserRepository
	leads   repository.LeadRepository
	clients repository.ClientRepository
	brokers repository.BrokerRepository
}
