package models

import "fmt"

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no-show"
)

// BookingStatuses lists every booking status in lifecycle order.
var BookingStatuses = []BookingStatus{
	BookingConfirmed,
	BookingCheckedIn,
	BookingCheckedOut,
	BookingCancelled,
	BookingNoShow,
}

// InactiveBookingStatuses never block a room.
var InactiveBookingStatuses = []BookingStatus{BookingCancelled, BookingNoShow}

var allowedTransitions = map[BookingStatus]map[BookingStatus]bool{
	BookingConfirmed:  {BookingCheckedIn: true, BookingCancelled: true},
	BookingCheckedIn:  {BookingCheckedOut: true, BookingCancelled: true},
	BookingCheckedOut: {},
	BookingCancelled:  {},
	BookingNoShow:     {},
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, st := range BookingStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown booking status: %s", s)
}

func CanTransition(from, to BookingStatus) bool {
	m, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return m[to]
}

// Blocks reports whether a booking in this status holds its room.
func (s BookingStatus) Blocks() bool {
	for _, st := range InactiveBookingStatuses {
		if s == st {
			return false
		}
	}
	return true
}

func (s BookingStatus) Terminal() bool {
	return len(allowedTransitions[s]) == 0
}

type AssignmentStatus string

const (
	AssignmentAssigned AssignmentStatus = "assigned"
	AssignmentOccupied AssignmentStatus = "occupied"
	AssignmentVacated  AssignmentStatus = "vacated"
)

// AssignmentStatusFor returns the assignment status that pairs with a booking
// status. Cancelled and no-show bookings have no pair and leave the assignment as is.
func AssignmentStatusFor(s BookingStatus) (AssignmentStatus, bool) {
	switch s {
	case BookingConfirmed:
		return AssignmentAssigned, true
	case BookingCheckedIn:
		return AssignmentOccupied, true
	case BookingCheckedOut:
		return AssignmentVacated, true
	default:
		return "", false
	}
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
)

func ParseRoomStatus(s string) (RoomStatus, error) {
	switch RoomStatus(s) {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return RoomStatus(s), nil
	default:
		return "", fmt.Errorf("unknown room status: %s", s)
	}
}

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentFailed    PaymentStatus = "failed"
)

type StaffRole string

const (
	RoleAdmin        StaffRole = "admin"
	RoleManager      StaffRole = "manager"
	RoleReceptionist StaffRole = "receptionist"
)
