package models

import "time"

type Room struct {
	ID uint `gorm:"primaryKey" json:"room_id"`

	RoomNumber  string     `gorm:"column:room_number;uniqueIndex;size:50;not null" json:"room_number"`
	RoomTypeID  uint       `gorm:"column:room_type_id;index;not null" json:"room_type_id"`
	Floor       string     `gorm:"size:10" json:"floor"`
	Description string     `gorm:"type:text" json:"description"`
	Active      bool       `gorm:"not null" json:"active"`
	Status      RoomStatus `gorm:"size:32;not null" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type"`
}
