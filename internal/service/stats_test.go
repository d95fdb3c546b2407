package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"unidash/internal/model"
)

func day(offset int) time.Time {
	return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestSummarizeLeads_ConversionRate(t *testing.T) {
	leads := make([]model.Lead, 0, 100)
	for i := 0; i < 100; i++ {
		stato := "new"
		if i < 37 {
			stato = "converted"
		}
		leads = append(leads, model.Lead{Stato: stato, DataRegistrazione: day(0)})
	}

	summary := SummarizeLeads(leads)
	assert.Equal(t, 100, summary.TotalLeads)
	assert.Equal(t, 37.0, summary.ConversionRate)
}

func TestSummarizeLeads_Empty(t *testing.T) {
	summary := SummarizeLeads(nil)
	assert.Equal(t, 0, summary.TotalLeads)
	assert.Equal(t, 0.0, summary.ConversionRate)
	assert.Empty(t, summary.TopSources)
	assert.Empty(t, summary.DateRange.Start)
}

func TestSummarizeLeads_TopSources(t *testing.T) {
	var leads []model.Lead
	add := func(fonte string, n int) {
		for i := 0; i < n; i++ {
			leads = append(leads, model.Lead{Fonte: fonte, DataRegistrazione: day(0)})
		}
	}
	add("facebook", 5)
	add("google", 3)
	add("referral", 3)
	add("tiktok", 1)
	add("linkedin", 1)
	add("radio", 1)
	leads = append(leads, model.Lead{Fonte: "", DataRegistrazione: day(0)})

	summary := SummarizeLeads(leads)
	assert.Len(t, summary.TopSources, 5)
	assert.Equal(t, SourceCount{Fonte: "facebook", Count: 5}, summary.TopSources[0])
	// Equal counts rank alphabetically.
	assert.Equal(t, SourceCount{Fonte: "google", Count: 3}, summary.TopSources[1])
	assert.Equal(t, SourceCount{Fonte: "referral", Count: 3}, summary.TopSources[2])
}

func TestSummarizeLeads_DateRangeAndTrends(t *testing.T) {
	leads := []model.Lead{
		{DataRegistrazione: day(0)},
		{DataRegistrazione: day(0)},
		{DataRegistrazione: day(1)},
		{DataRegistrazione: day(2)},
		{DataRegistrazione: day(2)},
		{DataRegistrazione: day(2)},
		{DataRegistrazione: day(2)},
	}

	summary := SummarizeLeads(leads)
	assert.Equal(t, "2025-03-01", summary.DateRange.Start)
	assert.Equal(t, "2025-03-03", summary.DateRange.End)
	// 7 leads over 3 days; first day 2, last day 4.
	assert.InDelta(t, 7.0/3.0, summary.Trends.DailyAverage, 1e-9)
	assert.InDelta(t, 100.0, summary.Trends.GrowthRate, 1e-9)
}

func TestSummarizeClients(t *testing.T) {
	clients := []model.Client{
		{Broker: "alpha", Piattaforma: "MT4", Deposito: decimal.NewFromInt(1000), VPSIP: "10.0.0.1", DataRegistrazione: day(0)},
		{Broker: "alpha", Piattaforma: "MT5", Deposito: decimal.NewFromInt(500), DataRegistrazione: day(1)},
		{Broker: "beta", Piattaforma: "MT4", Deposito: decimal.NewFromInt(250), DataRegistrazione: day(2)},
		{Broker: "beta", Piattaforma: "MT4", Deposito: decimal.NewFromInt(250), VPSIP: "10.0.0.2", DataRegistrazione: day(3)},
	}

	metrics := SummarizeClients(clients)
	assert.Equal(t, 4, metrics.TotalClients)
	assert.True(t, metrics.TotalDeposits.Equal(decimal.NewFromInt(2000)))
	assert.True(t, metrics.AverageDeposit.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, map[string]int{"alpha": 2, "beta": 2}, metrics.BrokerDistribution)
	assert.Equal(t, map[string]int{"MT4": 3, "MT5": 1}, metrics.PlatformAnalysis)
	assert.Equal(t, 2, metrics.VPSUsage.VPSUsers)
	assert.Equal(t, 50.0, metrics.VPSUsage.VPSPercentage)
	assert.True(t, metrics.Projections.ProjectedMonthly.Equal(decimal.NewFromInt(2200)))
	assert.True(t, metrics.Projections.ProjectedYearly.Equal(decimal.NewFromInt(2400)))
}

func TestSummarizeClients_Empty(t *testing.T) {
	metrics := SummarizeClients(nil)
	assert.Equal(t, 0, metrics.TotalClients)
	assert.True(t, metrics.TotalDeposits.IsZero())
	assert.Equal(t, 0, metrics.VPSUsage.VPSUsers)
}

func TestSummarizeBrokers_Rankings(t *testing.T) {
	brokers := []model.Broker{
		{NomeBroker: "ftmo", CapitaleIniziale: decimal.NewFromInt(10000)},
		{NomeBroker: "ftmo", CapitaleIniziale: decimal.NewFromInt(20000)},
		{NomeBroker: "topstep", CapitaleIniziale: decimal.NewFromInt(50000)},
	}

	summary := SummarizeBrokers(brokers)
	assert.Equal(t, 3, summary.TotalBrokers)
	assert.Len(t, summary.Rankings, 2)

	assert.Equal(t, "topstep", summary.Rankings[0].NomeBroker)
	assert.True(t, summary.Rankings[0].TotalCapital.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, 1, summary.Rankings[0].Accounts)

	assert.Equal(t, "ftmo", summary.Rankings[1].NomeBroker)
	assert.True(t, summary.Rankings[1].TotalCapital.Equal(decimal.NewFromInt(30000)))
	assert.True(t, summary.Rankings[1].AvgCapital.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, 2, summary.Rankings[1].Accounts)

	assert.NotEmpty(t, summary.MarketAnalysis)
	assert.NotEmpty(t, summary.RiskAssessment.RiskFactors)
}

func TestSummarizeAll(t *testing.T) {
	leads := []model.Lead{{DataRegistrazione: day(0)}, {DataRegistrazione: day(5)}}
	clients := []model.Client{{DataRegistrazione: day(2)}}
	brokers := []model.Broker{{NomeBroker: "ftmo"}}

	summary := SummarizeAll(leads, clients, brokers)
	assert.Equal(t, []string{"lead", "cpa", "prop"}, summary.Projects)
	assert.Equal(t, 4, summary.TotalRecords)
	assert.Equal(t, 4, summary.Insights.TotalRecords)
	assert.Equal(t, "2025-03-01", summary.DateRange.Start)
	assert.Equal(t, "2025-03-06", summary.DateRange.End)
}
