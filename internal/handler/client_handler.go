package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"unidash/internal/model"
	"unidash/internal/service"
)

// ClientHandler handles CPA client CRUD endpoints for the cpa tenant.
type ClientHandler struct {
	clientService service.ClientService
	authService   service.AuthService
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService service.ClientService, authService service.AuthService) *ClientHandler {
	return &ClientHandler{clientService: clientService, authService: authService}
}

// ClientRequest represents a CPA client create/update payload.
type ClientRequest struct {
	NomeCliente string          `json:"nome_cliente" validate:"required"`
	Email       string          `json:"email" validate:"omitempty,email"`
	Broker      string          `json:"broker"`
	Deposito    decimal.Decimal `json:"deposito"`
	Piattaforma string          `json:"piattaforma"`
	NumeroConto string          `json:"numero_conto"`
	VPSIP       string          `json:"vps_ip"`
}

// List godoc
// @Summary List CPA clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Client
// @Router /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, clients)
}

// Get godoc
// @Summary Get a CPA client by ID
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} model.Client
// @Failure 404 {object} errors.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	client, err := h.clientService.Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, client)
}

// Create godoc
// @Summary Create a CPA client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ClientRequest true "Client data"
// @Success 201 {object} model.Client
// @Failure 400 {object} errors.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "write"); err != nil {
		return err
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client := &model.Client{
		NomeCliente: req.NomeCliente,
		Email:       req.Email,
		Broker:      req.Broker,
		Deposito:    req.Deposito,
		Piattaforma: req.Piattaforma,
		NumeroConto: req.NumeroConto,
		VPSIP:       req.VPSIP,
	}
	if err := h.clientService.Create(c.Request().Context(), client); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusCreated, client)
}

// Update godoc
// @Summary Update a CPA client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body ClientRequest true "Client data"
// @Success 200 {object} model.Client
// @Failure 404 {object} errors.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "write"); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.clientService.Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(err)
	}

	client.NomeCliente = req.NomeCliente
	client.Email = req.Email
	client.Broker = req.Broker
	client.Deposito = req.Deposito
	client.Piattaforma = req.Piattaforma
	client.NumeroConto = req.NumeroConto
	client.VPSIP = req.VPSIP
	if err := h.clientService.Update(c.Request().Context(), client); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, client)
}

// Delete godoc
// @Summary Delete a CPA client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "delete"); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.clientService.Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "client deleted"})
}
