package domain

import (
	"time"
)

// AppConfig represents user-specific configuration (Key-Value)
type AppConfig struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CredentialKey is the AppConfig key holding the Twelve Data API key.
const CredentialKey = "twelve_data_key"
