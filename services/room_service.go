package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/monishpeddapally/hostel-management-system/models"
)

// RoomService owns room inventory: availability lookups, room status and the
// room/room type reference data.
type RoomService struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewRoomService(db *gorm.DB, log *zap.Logger) *RoomService {
	return &RoomService{DB: db, Log: log.Named("rooms")}
}

type RoomInput struct {
	RoomNumber  string
	RoomTypeID  uint
	Floor       string
	Description string
	Active      *bool
	// Status is only honoured on create; later changes go through SetRoomStatus.
	Status models.RoomStatus
}

type RoomTypeInput struct {
	Name      string
	Capacity  int
	BasePrice decimal.Decimal
	Amenities []string
}

func inactiveStatuses() []string {
	out := make([]string, 0, len(models.InactiveBookingStatuses))
	for _, s := range models.InactiveBookingStatuses {
		out = append(out, string(s))
	}
	return out
}

// activeOverlaps selects assignments whose booking still holds the room and
// whose [check_in, check_out) interval intersects [checkIn, checkOut).
// Back-to-back stays do not overlap.
func activeOverlaps(db *gorm.DB, checkIn, checkOut time.Time) *gorm.DB {
	return db.Model(&models.RoomAssignment{}).
		Joins("JOIN bookings ON bookings.id = room_assignments.booking_id").
		Where("bookings.status NOT IN ?", inactiveStatuses()).
		Where("bookings.check_in_date < ? AND bookings.check_out_date > ?", checkOut, checkIn)
}

func hasOverlap(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (bool, error) {
	var n int64
	err := activeOverlaps(tx, checkIn, checkOut).
		Where("room_assignments.room_id = ?", roomID).
		Count(&n).Error
	return n > 0, err
}

// setRoomStatus is the lifecycle-side setter; it enforces nothing beyond existence.
func setRoomStatus(tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	res := tx.Model(&models.Room{}).Where("id = ?", roomID).Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("room", roomID)
	}
	return nil
}

// ----------------------------------------------------
// Availability
// ----------------------------------------------------

// FindAvailableRooms returns active rooms free for [checkIn, checkOut),
// cheapest first.
func (s *RoomService) FindAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]models.Room, error) {
	return s.FindAvailableRoomsFor(ctx, checkIn, checkOut, 0)
}

// FindAvailableRoomsFor is FindAvailableRooms restricted to rooms that fit
// guests people. guests <= 0 disables the capacity filter.
func (s *RoomService) FindAvailableRoomsFor(ctx context.Context, checkIn, checkOut time.Time, guests int) ([]models.Room, error) {
	ci, co := StayDate(checkIn), StayDate(checkOut)
	if err := validateRange(ci, co); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	busy := activeOverlaps(db, ci, co).Select("room_assignments.room_id")

	q := db.
		Joins("JOIN room_types ON room_types.id = rooms.room_type_id").
		Preload("RoomType").
		Where("rooms.active = ?", true).
		Where("rooms.id NOT IN (?)", busy)
	if guests > 0 {
		q = q.Where("room_types.capacity >= ?", guests)
	}

	var rooms []models.Room
	if err := q.Order("room_types.base_price ASC").Order("rooms.room_number ASC").Find(&rooms).Error; err != nil {
		return nil, classify(s.Log, "find available rooms", err)
	}
	return rooms, nil
}

// ----------------------------------------------------
// Room status
// ----------------------------------------------------

// SetRoomStatus is the operator-facing status change. Transitions between
// available, cleaning and maintenance are free. occupied is reserved for
// check-in, and a room whose booking is checked-in cannot be changed by hand.
func (s *RoomService) SetRoomStatus(ctx context.Context, roomID uint, status models.RoomStatus) (*models.Room, error) {
	if _, err := models.ParseRoomStatus(string(status)); err != nil {
		return nil, invalid("%v", err)
	}
	if status == models.RoomOccupied {
		return nil, ErrInvalidTransition
	}

	var room models.Room
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, roomID).Error; err != nil {
			if isNotFound(err) {
				return notFound("room", roomID)
			}
			return err
		}

		var occupied int64
		if err := tx.Model(&models.RoomAssignment{}).
			Joins("JOIN bookings ON bookings.id = room_assignments.booking_id").
			Where("room_assignments.room_id = ? AND bookings.status = ?", roomID, string(models.BookingCheckedIn)).
			Count(&occupied).Error; err != nil {
			return err
		}
		if occupied > 0 {
			return ErrInvalidTransition
		}

		return setRoomStatus(tx, roomID, status)
	})
	if err != nil {
		return nil, classify(s.Log, "set room status", err)
	}

	s.Log.Info("room status changed", zap.Uint("room_id", roomID), zap.String("status", string(status)))
	return s.GetRoom(ctx, roomID)
}

// ----------------------------------------------------
// Rooms
// ----------------------------------------------------

func (s *RoomService) ListRooms(ctx context.Context, includeInactive bool) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Preload("RoomType")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	var rooms []models.Room
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, classify(s.Log, "list rooms", err)
	}
	return rooms, nil
}

func (s *RoomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.WithContext(ctx).Preload("RoomType").First(&room, id).Error; err != nil {
		if isNotFound(err) {
			return nil, notFound("room", id)
		}
		return nil, classify(s.Log, "get room", err)
	}
	return &room, nil
}

func (s *RoomService) validateRoomInput(tx *gorm.DB, in RoomInput) error {
	if strings.TrimSpace(in.RoomNumber) == "" {
		return invalid("room number is required")
	}
	var rt models.RoomType
	if err := tx.First(&rt, in.RoomTypeID).Error; err != nil {
		if isNotFound(err) {
			return notFound("room type", in.RoomTypeID)
		}
		return err
	}
	return nil
}

func (s *RoomService) CreateRoom(ctx context.Context, in RoomInput) (*models.Room, error) {
	status := in.Status
	if status == "" {
		status = models.RoomAvailable
	}
	if _, err := models.ParseRoomStatus(string(status)); err != nil {
		return nil, invalid("%v", err)
	}
	if status == models.RoomOccupied {
		return nil, invalid("a new room cannot start occupied")
	}

	room := models.Room{
		RoomNumber:  strings.TrimSpace(in.RoomNumber),
		RoomTypeID:  in.RoomTypeID,
		Floor:       strings.TrimSpace(in.Floor),
		Description: in.Description,
		Active:      in.Active == nil || *in.Active,
		Status:      status,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.validateRoomInput(tx, in); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&room).Error; err != nil {
			if isDuplicate(err) {
				return fmtDuplicate("room number", room.RoomNumber)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, classify(s.Log, "create room", err)
	}
	return s.GetRoom(ctx, room.ID)
}

// UpdateRoom edits descriptive fields. Status is deliberately left alone.
func (s *RoomService) UpdateRoom(ctx context.Context, id uint, in RoomInput) (*models.Room, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, id).Error; err != nil {
			if isNotFound(err) {
				return notFound("room", id)
			}
			return err
		}
		if err := s.validateRoomInput(tx, in); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"room_number":  strings.TrimSpace(in.RoomNumber),
			"room_type_id": in.RoomTypeID,
			"floor":        strings.TrimSpace(in.Floor),
			"description":  in.Description,
		}
		if in.Active != nil {
			updates["active"] = *in.Active
		}
		if err := tx.Model(&room).Updates(updates).Error; err != nil {
			if isDuplicate(err) {
				return fmtDuplicate("room number", in.RoomNumber)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, classify(s.Log, "update room", err)
	}
	return s.GetRoom(ctx, id)
}

// ----------------------------------------------------
// Room types
// ----------------------------------------------------

func (s *RoomService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.WithContext(ctx).Order("base_price ASC").Find(&types).Error; err != nil {
		return nil, classify(s.Log, "list room types", err)
	}
	return types, nil
}

func (s *RoomService) CreateRoomType(ctx context.Context, in RoomTypeInput) (*models.RoomType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("room type name is required")
	}
	if in.Capacity < 1 {
		return nil, invalid("capacity must be at least 1")
	}
	if in.BasePrice.IsNegative() {
		return nil, invalid("base price cannot be negative")
	}

	rt := models.RoomType{
		Name:      name,
		Capacity:  in.Capacity,
		BasePrice: in.BasePrice.Round(CurrencyScale),
	}
	if len(in.Amenities) > 0 {
		raw, err := json.Marshal(in.Amenities)
		if err != nil {
			return nil, invalid("amenities: %v", err)
		}
		rt.Amenities = datatypes.JSON(raw)
	}

	if err := s.DB.WithContext(ctx).Create(&rt).Error; err != nil {
		if isDuplicate(err) {
			return nil, fmtDuplicate("room type", name)
		}
		return nil, classify(s.Log, "create room type", err)
	}
	return &rt, nil
}
