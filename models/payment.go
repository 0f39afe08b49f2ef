package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID uint `gorm:"primaryKey" json:"payment_id"`

	BookingID     uint            `gorm:"column:booking_id;index;not null" json:"booking_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentDate   time.Time       `gorm:"column:payment_date;index;not null" json:"payment_date"`
	PaymentMethod string          `gorm:"column:payment_method;size:50;not null" json:"payment_method"`
	TransactionID string          `gorm:"column:transaction_id;size:128" json:"transaction_id"`
	Status        PaymentStatus   `gorm:"size:32;not null" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes"`
}
