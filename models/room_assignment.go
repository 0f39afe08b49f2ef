package models

import "time"

// RoomAssignment links a booking to its room. The unique booking index keeps
// the relation 1:1.
type RoomAssignment struct {
	ID uint `gorm:"primaryKey" json:"assignment_id"`

	BookingID    uint             `gorm:"column:booking_id;uniqueIndex;not null" json:"booking_id"`
	RoomID       uint             `gorm:"column:room_id;index;not null" json:"room_id"`
	CheckInTime  *time.Time       `gorm:"column:check_in_time" json:"check_in_time"`
	CheckOutTime *time.Time       `gorm:"column:check_out_time" json:"check_out_time"`
	Status       AssignmentStatus `gorm:"column:status;size:32;not null" json:"status"`

	Room Room `gorm:"foreignKey:RoomID" json:"room"`
}
