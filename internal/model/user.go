package model

import "time"

// Password hash algorithm tags. Records written by this service carry an explicit
// tag; records migrated from older deployments leave it empty and are verified by
// the legacy format detection in the auth package.
const (
	AlgoBcrypt       = "bcrypt"
	AlgoSHA256Salted = "sha256_salted"
	AlgoSHA256       = "sha256"
	AlgoPlain        = "plain"
)

// User represents an authenticated user in one of the tenant stores.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	PasswordAlgo string     `json:"-" gorm:"size:32"`           // Empty for legacy records
	FirstName    string     `json:"first_name" gorm:"size:255"`
	LastName     string     `json:"last_name" gorm:"size:255"`
	Email        string     `json:"email" gorm:"size:255"`
	Role         string     `json:"role" gorm:"size:50;default:'viewer'"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
