package models

import (
	"encoding/json"
	"time"
)

// StockStatus is derived from the stock and minimum quantities
type StockStatus string

const (
	StockOK  StockStatus = "ok"
	StockLow StockStatus = "low"
)

// Supply represents the supplies table
type Supply struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:120;not null" json:"name"`
	Category        string    `gorm:"size:50;not null;index" json:"category"`
	StockQuantity   int       `gorm:"not null;default:0" json:"stock_quantity"`
	MinimumQuantity int       `gorm:"not null;default:0" json:"minimum_quantity"`
	UnitPrice       float64   `gorm:"not null" json:"unit_price"`
	Supplier        string    `gorm:"size:100;not null" json:"supplier"`
	ExpiresOn       string    `gorm:"size:10" json:"expires_on,omitempty"`
	Unit            string    `gorm:"size:100;not null" json:"unit"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name for Supply model
func (Supply) TableName() string {
	return "supplies"
}

// StockStatus reports low when the stock is below the minimum
func (s Supply) StockStatus() StockStatus {
	if s.StockQuantity < s.MinimumQuantity {
		return StockLow
	}
	return StockOK
}

// MarshalJSON adds the derived stock_status field
func (s Supply) MarshalJSON() ([]byte, error) {
	type supply Supply
	return json.Marshal(struct {
		supply
		StockStatus StockStatus `json:"stock_status"`
	}{supply: supply(s), StockStatus: s.StockStatus()})
}
