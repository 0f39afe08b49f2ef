package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RoomType is reference data shared by rooms: capacity and the nightly base price.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"room_type_id"`

	Name      string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Capacity  int             `gorm:"not null;default:1" json:"capacity"`
	BasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Amenities datatypes.JSON  `gorm:"column:amenities" json:"amenities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
