package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"unidash/internal/errors"
	"unidash/internal/model"
	"unidash/internal/service"
)

// LeadHandler handles lead CRUD endpoints for the lead tenant.
type LeadHandler struct {
	leadService service.LeadService
	authService service.AuthService
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(leadService service.LeadService, authService service.AuthService) *LeadHandler {
	return &LeadHandler{leadService: leadService, authService: authService}
}

// LeadRequest represents a lead create/update payload.
type LeadRequest struct {
	Nome     string `json:"nome" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Telefono string `json:"telefono"`
	Fonte    string `json:"fonte"`
	Stato    string `json:"stato"`
}

// List godoc
// @Summary List leads
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Lead
// @Router /leads [get]
func (h *LeadHandler) List(c echo.Context) error {
	leads, err := h.leadService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, leads)
}

// Get godoc
// @Summary Get a lead by ID
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} model.Lead
// @Failure 404 {object} errors.ErrorResponse
// @Router /leads/{id} [get]
func (h *LeadHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	lead, err := h.leadService.Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, lead)
}

// Create godoc
// @Summary Create a lead
// @Tags leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LeadRequest true "Lead data"
// @Success 201 {object} model.Lead
// @Failure 400 {object} errors.ErrorResponse
// @Router /leads [post]
func (h *LeadHandler) Create(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "write"); err != nil {
		return err
	}

	var req LeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lead := &model.Lead{
		Nome:     req.Nome,
		Email:    req.Email,
		Telefono: req.Telefono,
		Fonte:    req.Fonte,
		Stato:    req.Stato,
	}
	if err := h.leadService.Create(c.Request().Context(), lead); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusCreated, lead)
}

// Update godoc
// @Summary Update a lead
// @Tags leads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Param request body LeadRequest true "Lead data"
// @Success 200 {object} model.Lead
// @Failure 404 {object} errors.ErrorResponse
// @Router /leads/{id} [put]
func (h *LeadHandler) Update(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "write"); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req LeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lead, err := h.leadService.Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(err)
	}

	lead.Nome = req.Nome
	lead.Email = req.Email
	lead.Telefono = req.Telefono
	lead.Fonte = req.Fonte
	lead.Stato = req.Stato
	if err := h.leadService.Update(c.Request().Context(), lead); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, lead)
}

// Delete godoc
// @Summary Delete a lead
// @Tags leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /leads/{id} [delete]
func (h *LeadHandler) Delete(c echo.Context) error {
	if err := RequirePermission(c, h.authService, "delete"); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.leadService.Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "lead deleted"})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func handleServiceError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
