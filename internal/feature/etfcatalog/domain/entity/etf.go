// Package entity defines the domain models for the etfcatalog feature.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ETF is one catalog entry (an exchange-traded fund).
// Ticker is the natural external key; every other descriptive field may be absent.
type ETF struct {
	ID            string     `gorm:"primaryKey;size:36"`
	Ticker        string     `gorm:"size:20;not null;uniqueIndex"`
	Name          string     `gorm:"size:255;not null"`
	Issuer        *string    `gorm:"size:255;index"`
	Category      *string    `gorm:"size:255;index"`
	ExpenseBps    *int       `gorm:"column:expense_bps"`
	AumUSD        *int64     `gorm:"column:aum_usd"`
	InceptionDate *time.Time `gorm:"type:date"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

// TableName pins the table name used by every reader.
func (ETF) TableName() string {
	return "etfs"
}

// BeforeSave assigns the server-side identifier and normalizes the ticker to upper case.
func (e *ETF) BeforeSave(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Ticker = NormalizeTicker(e.Ticker)
	return nil
}

// NormalizeTicker trims and upper-cases a ticker so lookups are case-insensitive.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
