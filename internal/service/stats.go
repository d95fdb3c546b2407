package service

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"unidash/internal/model"
)

// Descriptive statistics computed locally before any inference call. These are
// cheap aggregates, not forecasts; they also seed the fallback payloads when
// the inference API is unavailable.

// DateRange bounds the registration dates in a dataset.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// SourceCount is one entry of a top-sources ranking.
type SourceCount struct {
	Fonte string `json:"fonte"`
	Count int    `json:"count"`
}

// TrendStats summarizes the daily registration trend.
type TrendStats struct {
	DailyAverage float64 `json:"daily_average"`
	GrowthRate   float64 `json:"growth_rate"`
}

// LeadSummary is the precomputed context for lead analysis prompts.
type LeadSummary struct {
	TotalLeads     int           `json:"total_leads"`
	DateRange      DateRange     `json:"date_range"`
	ConversionRate float64       `json:"conversion_rate"`
	TopSources     []SourceCount `json:"top_sources"`
	Trends         TrendStats    `json:"trends"`
}

// SummarizeLeads computes the lead dataset statistics.
func SummarizeLeads(leads []model.Lead) LeadSummary {
	summary := LeadSummary{
		TotalLeads:     len(leads),
		ConversionRate: conversionRate(leads),
		TopSources:     topSources(leads, 5),
		Trends:         leadTrends(leads),
	}
	if len(leads) > 0 {
		min, max := leads[0].DataRegistrazione, leads[0].DataRegistrazione
		for _, l := range leads[1:] {
			if l.DataRegistrazione.Before(min) {
				min = l.DataRegistrazione
			}
			if l.DataRegistrazione.After(max) {
				max = l.DataRegistrazione
			}
		}
		summary.DateRange = DateRange{Start: min.Format("2006-01-02"), End: max.Format("2006-01-02")}
	}
	return summary
}

// conversionRate returns the percentage of leads whose stato is "converted".
func conversionRate(leads []model.Lead) float64 {
	if len(leads) == 0 {
		return 0
	}
	converted := 0
	for _, l := range leads {
		if l.Stato == "converted" {
			converted++
		}
	}
	return float64(converted) / float64(len(leads)) * 100
}

func topSources(leads []model.Lead, n int) []SourceCount {
	counts := make(map[string]int)
	for _, l := range leads {
		if l.Fonte != "" {
			counts[l.Fonte]++
		}
	}
	ranked := make([]SourceCount, 0, len(counts))
	for fonte, count := range counts {
		ranked = append(ranked, SourceCount{Fonte: fonte, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Fonte < ranked[j].Fonte
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// leadTrends buckets registrations by day and compares the first and last
// buckets for a simple growth figure.
func leadTrends(leads []model.Lead) TrendStats {
	buckets := make(map[string]int)
	for _, l := range leads {
		buckets[l.DataRegistrazione.Format("2006-01-02")]++
	}
	if len(buckets) == 0 {
		return TrendStats{}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	total := 0
	for _, count := range buckets {
		total += count
	}

	stats := TrendStats{DailyAverage: float64(total) / float64(len(days))}
	if len(days) > 1 && buckets[days[0]] > 0 {
		first, last := buckets[days[0]], buckets[days[len(days)-1]]
		stats.GrowthRate = float64(last-first) / float64(first) * 100
	}
	return stats
}

// VPSUsage summarizes how many clients run on a VPS.
type VPSUsage struct {
	VPSUsers      int     `json:"vps_users"`
	VPSPercentage float64 `json:"vps_percentage"`
}

// FinancialProjections holds fixed-growth deposit projections.
type FinancialProjections struct {
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	AverageDeposit   decimal.Decimal `json:"average_deposit"`
	ProjectedMonthly decimal.Decimal `json:"projected_monthly"`
	ProjectedYearly  decimal.Decimal `json:"projected_yearly"`
}

// CPAMetrics is the precomputed context for financial-metric analysis prompts.
type CPAMetrics struct {
	TotalClients       int                  `json:"total_clients"`
	TotalDeposits      decimal.Decimal      `json:"total_deposits"`
	AverageDeposit     decimal.Decimal      `json:"average_deposit"`
	BrokerDistribution map[string]int       `json:"broker_distribution"`
	PlatformAnalysis   map[string]int       `json:"platform_analysis"`
	VPSUsage           VPSUsage             `json:"vps_usage"`
	Projections        FinancialProjections `json:"financial_projections"`
}

// SummarizeClients computes the CPA dataset statistics.
func SummarizeClients(clients []model.Client) CPAMetrics {
	metrics := CPAMetrics{
		TotalClients:       len(clients),
		BrokerDistribution: make(map[string]int),
		PlatformAnalysis:   make(map[string]int),
	}

	total := decimal.Zero
	vpsUsers := 0
	for _, c := range clients {
		total = total.Add(c.Deposito)
		if c.Broker != "" {
			metrics.BrokerDistribution[c.Broker]++
		}
		if c.Piattaforma != "" {
			metrics.PlatformAnalysis[c.Piattaforma]++
		}
		if c.VPSIP != "" {
			vpsUsers++
		}
	}

	metrics.TotalDeposits = total
	if len(clients) > 0 {
		metrics.AverageDeposit = total.Div(decimal.NewFromInt(int64(len(clients)))).Round(2)
		metrics.VPSUsage = VPSUsage{
			VPSUsers:      vpsUsers,
			VPSPercentage: float64(vpsUsers) / float64(len(clients)) * 100,
		}
	}
	metrics.Projections = FinancialProjections{
		TotalDeposits:    total,
		AverageDeposit:   metrics.AverageDeposit,
		ProjectedMonthly: total.Mul(decimal.NewFromFloat(1.1)).Round(2),
		ProjectedYearly:  total.Mul(decimal.NewFromFloat(1.2)).Round(2),
	}
	return metrics
}

// BrokerRanking aggregates capital per broker name.
type BrokerRanking struct {
	NomeBroker   string          `json:"nome_broker"`
	TotalCapital decimal.Decimal `json:"total_capital"`
	AvgCapital   decimal.Decimal `json:"avg_capital"`
	Accounts     int             `json:"accounts"`
}

// RiskAssessment carries the static risk descriptors embedded in broker prompts.
type RiskAssessment struct {
	RiskLevel            string   `json:"risk_level"`
	RiskFactors          []string `json:"risk_factors"`
	MitigationStrategies []string `json:"mitigation_strategies"`
}

// BrokerSummary is the precomputed context for broker-performance prompts.
type BrokerSummary struct {
	TotalBrokers   int               `json:"total_brokers"`
	Rankings       []BrokerRanking   `json:"broker_rankings"`
	MarketAnalysis map[string]string `json:"market_analysis"`
	RiskAssessment RiskAssessment    `json:"risk_assessment"`
}

// SummarizeBrokers computes the prop broker statistics.
func SummarizeBrokers(brokers []model.Broker) BrokerSummary {
	type agg struct {
		total decimal.Decimal
		count int
	}
	byName := make(map[string]*agg)
	for _, b := range brokers {
		entry, ok := byName[b.NomeBroker]
		if !ok {
			entry = &agg{total: decimal.Zero}
			byName[b.NomeBroker] = entry
		}
		entry.total = entry.total.Add(b.CapitaleIniziale)
		entry.count++
	}

	rankings := make([]BrokerRanking, 0, len(byName))
	for name, entry := range byName {
		rankings = append(rankings, BrokerRanking{
			NomeBroker:   name,
			TotalCapital: entry.total,
			AvgCapital:   entry.total.Div(decimal.NewFromInt(int64(entry.count))).Round(2),
			Accounts:     entry.count,
		})
	}
	sort.Slice(rankings, func(i, j int) bool {
		if !rankings[i].TotalCapital.Equal(rankings[j].TotalCapital) {
			return rankings[i].TotalCapital.GreaterThan(rankings[j].TotalCapital)
		}
		return rankings[i].NomeBroker < rankings[j].NomeBroker
	})

	return BrokerSummary{
		TotalBrokers: len(brokers),
		Rankings:     rankings,
		MarketAnalysis: map[string]string{
			"market_growth":   "positive",
			"trend_direction": "upward",
			"volatility":      "medium",
		},
		RiskAssessment: RiskAssessment{
			RiskLevel:            "low",
			RiskFactors:          []string{"market_volatility", "regulatory_changes"},
			MitigationStrategies: []string{"diversification", "risk_monitoring"},
		},
	}
}

// CrossInsights summarizes patterns shared across the verticals.
type CrossInsights struct {
	TotalProjects  int      `json:"total_projects"`
	TotalRecords   int      `json:"total_records"`
	CommonPatterns []string `json:"common_patterns"`
}

// UnifiedSummary is the precomputed context for the cross-tenant report prompt.
type UnifiedSummary struct {
	Projects     []string      `json:"projects"`
	TotalRecords int           `json:"total_records"`
	DateRange    DateRange     `json:"date_range"`
	Insights     CrossInsights `json:"cross_project_insights"`
}

// SummarizeAll computes the cross-tenant statistics.
func SummarizeAll(leads []model.Lead, clients []model.Client, brokers []model.Broker) UnifiedSummary {
	total := len(leads) + len(clients) + len(brokers)

	var dates []time.Time
	for _, l := range leads {
		dates = append(dates, l.DataRegistrazione)
	}
	for _, c := range clients {
		dates = append(dates, c.DataRegistrazione)
	}

	summary := UnifiedSummary{
		Projects:     []string{"lead", "cpa", "prop"},
		TotalRecords: total,
		Insights: CrossInsights{
			TotalProjects:  3,
			TotalRecords:   total,
			CommonPatterns: []string{"growth_trend", "seasonal_variation"},
		},
	}
	if len(dates) > 0 {
		min, max := dates[0], dates[0]
		for _, d := range dates[1:] {
			if d.Before(min) {
				min = d
			}
			if d.After(max) {
				max = d
			}
		}
		summary.DateRange = DateRange{Start: min.Format("2006-01-02"), End: max.Format("2006-01-02")}
	}
	return summary
}
