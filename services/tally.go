package services

import (
	"time"

	"github.com/shopspring/decimal"
)

const night = 24 * time.Hour

// CurrencyScale is the number of decimal places amounts are rounded to.
const CurrencyScale int32 = 2

// Nights counts the nights between check-in and check-out; a partial day is
// charged as a full night.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		return 0, ErrInvalidRange
	}
	d := checkOut.Sub(checkIn)
	n := int(d / night)
	if d%night != 0 {
		n++
	}
	return n, nil
}

// ComputeStayTotal is basePrice x nights.
func ComputeStayTotal(basePrice decimal.Decimal, checkIn, checkOut time.Time) (decimal.Decimal, error) {
	n, err := Nights(checkIn, checkOut)
	if err != nil {
		return decimal.Zero, err
	}
	return basePrice.Mul(decimal.NewFromInt(int64(n))).Round(CurrencyScale), nil
}

// Balance summarizes what a booking owes. Charges are informational: the
// booking total is authoritative once a final amount was set at check-out.
type Balance struct {
	BookingID    uint            `json:"booking_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ExtraCharges decimal.Decimal `json:"extra_charges"`
	Paid         decimal.Decimal `json:"paid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// StayDate truncates t to midnight UTC of its calendar date.
func StayDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateRange(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return ErrInvalidRange
	}
	return nil
}
