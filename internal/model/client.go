package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client represents a CPA client record in the cpa tenant store.
type Client struct {
	ID                uint            `json:"id" gorm:"primaryKey"`
	NomeCliente       string          `json:"nome_cliente" gorm:"size:255;not null"`
	Email             string          `json:"email" gorm:"size:255;index"`
	Broker            string          `json:"broker" gorm:"size:100;index"`
	Deposito          decimal.Decimal `json:"deposito" gorm:"type:decimal(20,2)"`
	Piattaforma       string          `json:"piattaforma" gorm:"size:100"`
	NumeroConto       string          `json:"numero_conto" gorm:"size:100"`
	VPSIP             string          `json:"vps_ip" gorm:"size:64"`
	DataRegistrazione time.Time       `json:"data_registrazione" gorm:"index"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
