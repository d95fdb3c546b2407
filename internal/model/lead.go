package model

import "time"

// Lead represents a sales lead in the lead tenant store. Column names follow the
// hosted database schema, which predates this service.
type Lead struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Nome              string    `json:"nome" gorm:"size:255;not null"`
	Email             string    `json:"email" gorm:"size:255;index"`
	Telefono          string    `json:"telefono" gorm:"size:50"`
	Fonte             string    `json:"fonte" gorm:"size:100;index"`
	Stato             string    `json:"stato" gorm:"size:50;index"`
	DataRegistrazione time.Time `json:"data_registrazione" gorm:"index"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
