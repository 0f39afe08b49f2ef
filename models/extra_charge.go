package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExtraCharge struct {
	ID uint `gorm:"primaryKey" json:"charge_id"`

	BookingID   uint            `gorm:"column:booking_id;index;not null" json:"booking_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}
