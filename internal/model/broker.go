package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Broker represents a prop-firm broker account in the prop tenant store.
type Broker struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	NomeBroker       string          `json:"nome_broker" gorm:"size:255;not null;index"`
	Livello          string          `json:"livello" gorm:"size:50"`
	CapitaleIniziale decimal.Decimal `json:"capitale_iniziale" gorm:"type:decimal(20,2)"`
	Piattaforma      string          `json:"piattaforma" gorm:"size:100"`
	ProfittoTarget   decimal.Decimal `json:"profitto_target" gorm:"type:decimal(20,2)"`
	RiskLevel        string          `json:"risk_level" gorm:"size:50"`
	Stato            string          `json:"stato" gorm:"size:50;index"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
