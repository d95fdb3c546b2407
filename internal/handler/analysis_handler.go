package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"unidash/internal/service"
)

// AnalysisHandler exposes the AI-backed report endpoints. Inference failures
// never surface as errors here; the service degrades to a locally computed
// fallback payload.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	leadService     service.LeadService
	clientService   service.ClientService
	brokerService   service.BrokerService
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(
	analysisService service.AnalysisService,
	leadService service.LeadService,
	clientService service.ClientService,
	brokerService service.BrokerService,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		leadService:     leadService,
		clientService:   clientService,
		brokerService:   brokerService,
	}
}

// Leads godoc
// @Summary AI lead analysis
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /analysis/leads [get]
func (h *AnalysisHandler) Leads(c echo.Context) error {
	leads, err := h.leadService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, h.analysisService.AnalyzeLeads(c.Request().Context(), leads))
}

// Financials godoc
// @Summary AI CPA financial-metric analysis
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /analysis/financials [get]
func (h *AnalysisHandler) Financials(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, h.analysisService.AnalyzeFinancials(c.Request().Context(), clients))
}

// Brokers godoc
// @Summary AI broker-performance analysis
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /analysis/brokers [get]
func (h *AnalysisHandler) Brokers(c echo.Context) error {
	brokers, err := h.brokerService.List(c.Request().Context())
	if err != nil {
		return handleServiceError(err)
	}
	return c.JSON(http.StatusOK, h.analysisService.AnalyzeBrokers(c.Request().Context(), brokers))
}

// Unified godoc
// @Summary AI cross-tenant unified report
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /analysis/unified [get]
func (h *AnalysisHandler) Unified(c echo.Context) error {
	ctx := c.Request().Context()

	leads, err := h.leadService.List(ctx)
	if err != nil {
		return handleServiceError(err)
	}
	clients, err := h.clientService.List(ctx)
	if err != nil {
		return handleServiceError(err)
	}
	brokers, err := h.brokerService.List(ctx)
	if err != nil {
		return handleServiceError(err)
	}

	return c.JSON(http.StatusOK, h.analysisService.UnifiedReport(ctx, leads, clients, brokers))
}
