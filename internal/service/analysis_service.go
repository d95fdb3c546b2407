package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"unidash/internal/ai"
	"unidash/internal/model"
)

// AnalysisService turns vertical datasets into natural-language reports via
// the inference client. Every method returns a usable result object: a parsed
// AI analysis when possible, a raw-text passthrough when the response is not
// valid JSON, and a canned fallback built from the local statistics when the
// inference call fails entirely.
type AnalysisService interface {
	AnalyzeLeads(ctx context.Context, leads []model.Lead) map[string]interface{}
	AnalyzeFinancials(ctx context.Context, clients []model.Client) map[string]interface{}
	AnalyzeBrokers(ctx context.Context, brokers []model.Broker) map[string]interface{}
	UnifiedReport(ctx context.Context, leads []model.Lead, clients []model.Client, brokers []model.Broker) map[string]interface{}
}

type analysisService struct {
	ai  ai.Caller
	now func() time.Time
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(caller ai.Caller) AnalysisService {
	return &analysisService{ai: caller, now: time.Now}
}

// AnalyzeLeads produces a lead-performance analysis.
func (s *analysisService) AnalyzeLeads(ctx context.Context, leads []model.Lead) map[string]interface{} {
	summary := SummarizeLeads(leads)
	messages := []ai.Message{
		{
			Role: "system",
			Content: "You are an expert lead analyst for the LEAD project. " +
				"Analyze the provided data and deliver detailed insights, forecasts and strategic recommendations. " +
				"Respond with structured JSON.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf("Analyze this lead data:\n\n%s\n\n"+
				"Provide:\n1. Performance analysis\n2. Identified trends\n3. 30-day forecast\n"+
				"4. Strategic recommendations\n5. Areas for improvement\n\n"+
				"JSON format with sections: analysis, trends, predictions, recommendations, improvements",
				indentJSON(summary)),
		},
	}

	result := s.callAndParse(ctx, messages, "lead", "analysis")
	if result == nil {
		result = map[string]interface{}{
			"analysis":        "Basic analysis completed (AI unavailable)",
			"recommendations": []string{"Improve conversion rate", "Optimize lead sources"},
		}
	}
	result["data_summary"] = summary
	result["timestamp"] = s.now().Format(time.RFC3339)
	return result
}

// AnalyzeFinancials produces advanced CPA financial metrics.
func (s *analysisService) AnalyzeFinancials(ctx context.Context, clients []model.Client) map[string]interface{} {
	metrics := SummarizeClients(clients)
	messages := []ai.Message{
		{
			Role: "system",
			Content: "You are a financial expert for the CPA project. " +
				"Compute advanced metrics, ROI, financial forecasts and performance analysis. " +
				"Respond with structured JSON.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf("Compute advanced CPA metrics:\n\n%s\n\n"+
				"Compute:\n1. ROI per broker\n2. Growth projections\n3. Risk analysis\n"+
				"4. Budget optimization\n5. Strategic recommendations\n\n"+
				"JSON format with sections: roi_analysis, growth_projections, risk_assessment, budget_optimization, strategic_recommendations",
				indentJSON(metrics)),
		},
	}

	result := s.callAndParse(ctx, messages, "cpa", "advanced_analysis")
	if result == nil {
		result = map[string]interface{}{
			"roi_analysis":    "Basic ROI analysis completed (AI unavailable)",
			"recommendations": []string{"Optimize budget allocation", "Improve ROI per broker"},
		}
	}
	result["basic_metrics"] = metrics
	result["timestamp"] = s.now().Format(time.RFC3339)
	return result
}

// AnalyzeBrokers produces a broker-performance analysis.
func (s *analysisService) AnalyzeBrokers(ctx context.Context, brokers []model.Broker) map[string]interface{} {
	summary := SummarizeBrokers(brokers)
	messages := []ai.Message{
		{
			Role: "system",
			Content: "You are a financial-markets expert for the PROP project. " +
				"Analyze broker performance and market trends and provide strategic recommendations. " +
				"Respond with structured JSON.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf("Analyze broker performance:\n\n%s\n\n"+
				"Provide:\n1. Detailed broker ranking\n2. Market analysis\n3. Trend forecasts\n"+
				"4. Investment recommendations\n5. Risk management\n\n"+
				"JSON format with sections: broker_rankings, market_analysis, trend_predictions, investment_recommendations, risk_management",
				indentJSON(summary)),
		},
	}

	result := s.callAndParse(ctx, messages, "prop", "advanced_analysis")
	if result == nil {
		result = map[string]interface{}{
			"broker_rankings": "Basic ranking completed (AI unavailable)",
			"recommendations": []string{"Diversify brokers", "Monitor performance"},
		}
	}
	result["basic_analysis"] = summary
	result["timestamp"] = s.now().Format(time.RFC3339)
	return result
}

// UnifiedReport produces a cross-tenant summary report.
func (s *analysisService) UnifiedReport(ctx context.Context, leads []model.Lead, clients []model.Client, brokers []model.Broker) map[string]interface{} {
	summary := SummarizeAll(leads, clients, brokers)
	messages := []ai.Message{
		{
			Role: "system",
			Content: "You are a strategy expert analyzing multiple projects. " +
				"Generate a unified report with cross-project insights, identified synergies and global strategic recommendations. " +
				"Respond with structured JSON.",
		},
		{
			Role: "user",
			Content: fmt.Sprintf("Generate a unified report for all projects:\n\n%s\n\n"+
				"Include:\n1. General overview\n2. Project synergies\n3. Cross-project insights\n"+
				"4. Global strategic recommendations\n5. Development roadmap\n\n"+
				"JSON format with sections: executive_summary, project_synergies, cross_insights, strategic_recommendations, development_roadmap",
				indentJSON(summary)),
		},
	}

	result := s.callAndParse(ctx, messages, "unified", "unified_report")
	if result == nil {
		result = map[string]interface{}{
			"executive_summary": "Basic unified report completed (AI unavailable)",
			"recommendations":   []string{"Integrate projects", "Optimize synergies"},
		}
	}
	result["unified_summary"] = summary
	result["timestamp"] = s.now().Format(time.RFC3339)
	return result
}

// callAndParse runs the inference call and parses the response as JSON. A
// malformed but present response is kept under rawKey rather than discarded.
// A nil return means the call itself failed and the caller must fall back.
func (s *analysisService) callAndParse(ctx context.Context, messages []ai.Message, tag, rawKey string) map[string]interface{} {
	text, ok := s.ai.Call(ctx, messages, tag)
	if !ok {
		return nil
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil || parsed == nil {
		return map[string]interface{}{rawKey: text}
	}
	return parsed
}

func indentJSON(v interface{}) string {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(payload)
}
