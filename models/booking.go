package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"booking_id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	GuestID       uint   `gorm:"column:guest_id;index;not null" json:"guest_id"`
	StaffID       *uint  `gorm:"column:staff_id;index" json:"staff_id,omitempty"`

	BookingDate    time.Time       `gorm:"column:booking_date;not null" json:"booking_date"`
	CheckInDate    time.Time       `gorm:"column:check_in_date;index;not null" json:"check_in_date"`
	CheckOutDate   time.Time       `gorm:"column:check_out_date;index;not null" json:"check_out_date"`
	NumberOfGuests int             `gorm:"column:number_of_guests;not null" json:"number_of_guests"`
	Status         BookingStatus   `gorm:"column:status;size:32;index;not null" json:"status"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2);not null" json:"total_amount"`

	BookingSource   string `gorm:"column:booking_source;size:64" json:"booking_source"`
	SpecialRequests string `gorm:"column:special_requests;type:text" json:"special_requests"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Guest        Guest          `gorm:"foreignKey:GuestID" json:"guest"`
	Staff        *Staff         `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Assignment   RoomAssignment `gorm:"foreignKey:BookingID" json:"room_assignment"`
	ExtraCharges []ExtraCharge  `gorm:"foreignKey:BookingID" json:"extra_charges"`
	Payments     []Payment      `gorm:"foreignKey:BookingID" json:"payments"`
}
