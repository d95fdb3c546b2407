package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"unidash/internal/model"
	"unidash/internal/service"
)

// BrokerHandler handles prop broker CRUD endpoints for the prop tenant.
type BrokerHandler struct {
	brokerService service.BrokerService
	authService   service.AuthService
}

// NewBrokerHandler creates a new broker handler.
func NewBrokerHandler(brokerService service.BrokerService, authService service.AuthService) *BrokerHandler {
	return &BrokerHandler{brokerService: brokerService, authService: authService}
}

// BrokerRequest represents a broker create/update payload.
type BrokerRequest struct {
	NomeBroker       string          `json:"nome_broker" validate:"required"`
	Livello          string          `json:"livello"`
	CapitaleIniziale decimal.Decimal `json:"capitale_iniziale"`
	Piattaforma      string          `json:"piattaforma"`
	ProfittoTarget   decimal.Decimal `json:"profitto_target"`
	RiskLevel        string          `json:"risk_level"`
	Stato            string          `json:"stato"`
}

// List godoc
// @Summary List prop brokers
// @Tags brokers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Broker
// @Router /brokers [get]
func (h *BrokerHandler) List(c echo.Context) error {
	brokers, err := h.brokerService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, brokers)
}

// Get godoc
// @Summary Get a prop broker by ID
// @Tags brokers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Broker ID"
// @Success 200 {object} model.Broker
// @Failure 404 {object} errors.ErrorResponse
// @Router /brokers/{id} [get]
func (h *BrokerHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	broker, err := h.brokerService.Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, broker)
}

// Create godoc
// @Summary Create a prop broker
// @Tags brokers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BrokerRequest true "Broker data"
// @Success 201 {object} model.Broker
// @Failure 400 {object} errors.ErrorResponse
// @Router /brokers [post]
func (h *BrokerHandler) Create(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "write"); err != nil {
		return err
	}

	var req BrokerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	broker := &model.Broker{
		NomeBroker:       req.NomeBroker,
		Livello:          req.Livello,
		CapitaleIniziale: req.CapitaleIniziale,
		Piattaforma:      req.Piattaforma,
		ProfittoTarget:   req.ProfittoTarget,
		RiskLevel:        req.RiskLevel,
		Stato:            req.Stato,
	}
	if err := h.brokerService.Create(c.Request().Context(), broker); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusCreated, broker)
}

// Update godoc
// @Summary Update a prop broker
// @Tags brokers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Broker ID"
// @Param request body BrokerRequest true "Broker data"
// @Success 200 {object} model.Broker
// @Failure 404 {object} errors.ErrorResponse
// @Router /brokers/{id} [put]
func (h *BrokerHandler) Update(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "write"); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req BrokerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	broker, err := h.brokerService.Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(err)
	}

	broker.NomeBroker = req.NomeBroker
	broker.Livello = req.Livello
	broker.CapitaleIniziale = req.CapitaleIniziale
	broker.Piattaforma = req.Piattaforma
	broker.ProfittoTarget = req.ProfittoTarget
	broker.RiskLevel = req.RiskLevel
	broker.Stato = req.Stato
	if err := h.brokerService.Update(c.Request().Context(), broker); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, broker)
}

// Delete godoc
// @Summary Delete a prop broker
// @Tags brokers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Broker ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /brokers/{id} [delete]
func (h *BrokerHandler) Delete(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "delete"); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.brokerService.Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "broker deleted"})
}
