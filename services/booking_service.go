package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/monishpeddapally/hostel-management-system/models"
)

// BookingService drives the booking lifecycle: creation with its room
// assignment, check-in, check-out and cancellation. Every operation runs in a
// single transaction.
type BookingService struct {
	DB  *gorm.DB
	Log *zap.Logger

	// Now is the clock used for check-in/out times; nil means time.Now.
	Now func() time.Time
}

func NewBookingService(db *gorm.DB, log *zap.Logger) *BookingService {
	return &BookingService{DB: db, Log: log.Named("bookings")}
}

type CreateBookingInput struct {
	GuestID         uint
	RoomID          uint
	CheckIn         time.Time
	CheckOut        time.Time
	NumberOfGuests  int
	BookingSource   string
	SpecialRequests string
	StaffID         *uint
}

type ChargeInput struct {
	Description string
	Amount      decimal.Decimal
}

type CheckOutInput struct {
	// FinalAmount, when set, replaces the booking total.
	FinalAmount  *decimal.Decimal
	ExtraCharges []ChargeInput
}

type BookingFilter struct {
	Status   models.BookingStatus
	FromDate *time.Time
	ToDate   *time.Time
	GuestID  uint
}

func (s *BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func newReferenceCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK-" + strings.ToUpper(raw[:12])
}

// ----------------------------------------------------
// CreateBooking
// ----------------------------------------------------

// CreateBooking re-checks availability while holding a lock on the room row,
// so two concurrent requests for the same room serialize and the loser gets
// ErrRoomUnavailable. Booking and assignment are written together or not at all.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	ci, co := StayDate(in.CheckIn), StayDate(in.CheckOut)
	if err := validateRange(ci, co); err != nil {
		return nil, err
	}
	if in.NumberOfGuests < 1 {
		return nil, invalid("number of guests must be at least 1")
	}
	if in.GuestID == 0 || in.RoomID == 0 {
		return nil, invalid("guest and room are required")
	}

	booking := models.Booking{
		ReferenceCode:   newReferenceCode(),
		GuestID:         in.GuestID,
		StaffID:         in.StaffID,
		BookingDate:     s.now(),
		CheckInDate:     ci,
		CheckOutDate:    co,
		NumberOfGuests:  in.NumberOfGuests,
		Status:          models.BookingConfirmed,
		BookingSource:   strings.TrimSpace(in.BookingSource),
		SpecialRequests: strings.TrimSpace(in.SpecialRequests),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
			if isNotFound(err) {
				return notFound("room", in.RoomID)
			}
			return err
		}
		if !room.Active {
			return fmt.Errorf("%w: room %s is inactive", ErrRoomUnavailable, room.RoomNumber)
		}

		var rt models.RoomType
		if err := tx.First(&rt, room.RoomTypeID).Error; err != nil {
			return err
		}
		if in.NumberOfGuests > rt.Capacity {
			return fmt.Errorf("%w: %d guests, room %s holds %d", ErrCapacityExceeded, in.NumberOfGuests, room.RoomNumber, rt.Capacity)
		}

		var guest models.Guest
		if err := tx.Select("id").First(&guest, in.GuestID).Error; err != nil {
			if isNotFound(err) {
				return notFound("guest", in.GuestID)
			}
			return err
		}

		taken, err := hasOverlap(tx, room.ID, ci, co)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: room %s, %s to %s", ErrRoomUnavailable, room.RoomNumber, ci.Format(time.DateOnly), co.Format(time.DateOnly))
		}

		total, err := ComputeStayTotal(rt.BasePrice, ci, co)
		if err != nil {
			return err
		}
		booking.TotalAmount = total

		if err := tx.Omit(clause.Associations).Create(&booking).Error; err != nil {
			return err
		}

		assignment := models.RoomAssignment{
			BookingID: booking.ID,
			RoomID:    room.ID,
			Status:    models.AssignmentAssigned,
		}
		return tx.Omit(clause.Associations).Create(&assignment).Error
	})
	if err != nil {
		return nil, classify(s.Log, "create booking", err)
	}

	s.Log.Info("booking created",
		zap.Uint("booking_id", booking.ID),
		zap.String("reference_code", booking.ReferenceCode),
		zap.Uint("room_id", in.RoomID),
		zap.String("total_amount", booking.TotalAmount.StringFixed(CurrencyScale)),
	)
	return s.GetBooking(ctx, booking.ID)
}

// ----------------------------------------------------
// Status transitions
// ----------------------------------------------------

type transitionFunc func(tx *gorm.DB, b *models.Booking, a *models.RoomAssignment, now time.Time) error

// transition locks the booking, checks the edge against the status table,
// moves booking and assignment status in lock-step and then runs apply.
func (s *BookingService) transition(ctx context.Context, bookingID uint, to models.BookingStatus, apply transitionFunc) (*models.Booking, error) {
	var from models.BookingStatus
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, bookingID).Error; err != nil {
			if isNotFound(err) {
				return notFound("booking", bookingID)
			}
			return err
		}
		from = b.Status
		if !models.CanTransition(b.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
		}

		var a models.RoomAssignment
		if err := tx.Where("booking_id = ?", bookingID).First(&a).Error; err != nil {
			if isNotFound(err) {
				return fmt.Errorf("%w: room assignment for booking %d", ErrNotFound, bookingID)
			}
			return err
		}

		if err := tx.Model(&models.Booking{}).Where("id = ?", bookingID).Update("status", string(to)).Error; err != nil {
			return err
		}
		if as, ok := models.AssignmentStatusFor(to); ok {
			if err := tx.Model(&models.RoomAssignment{}).Where("id = ?", a.ID).Update("status", string(as)).Error; err != nil {
				return err
			}
		}

		if apply == nil {
			return nil
		}
		return apply(tx, &b, &a, s.now())
	})
	if err != nil {
		return nil, classify(s.Log, "booking "+string(to), err)
	}

	s.Log.Info("booking status changed",
		zap.Uint("booking_id", bookingID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return s.GetBooking(ctx, bookingID)
}

// CheckIn moves a confirmed booking to checked-in and marks its room occupied.
// A same-day arrival waits until the departing guest has checked out.
func (s *BookingService) CheckIn(ctx context.Context, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.BookingCheckedIn, func(tx *gorm.DB, b *models.Booking, a *models.RoomAssignment, now time.Time) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&room, a.RoomID).Error; err != nil {
			return err
		}
		var inHouse int64
		if err := tx.Model(&models.RoomAssignment{}).
			Joins("JOIN bookings ON bookings.id = room_assignments.booking_id").
			Where("room_assignments.room_id = ? AND bookings.id <> ? AND bookings.status = ?", a.RoomID, b.ID, string(models.BookingCheckedIn)).
			Count(&inHouse).Error; err != nil {
			return err
		}
		if inHouse > 0 {
			return fmt.Errorf("%w: room %d still has a checked-in guest", ErrRoomUnavailable, a.RoomID)
		}

		if err := tx.Model(&models.RoomAssignment{}).Where("id = ?", a.ID).Update("check_in_time", now).Error; err != nil {
			return err
		}
		return setRoomStatus(tx, a.RoomID, models.RoomOccupied)
	})
}

// CheckOut moves a checked-in booking to checked-out, sends the room to
// cleaning and records the final amount and extra charges.
func (s *BookingService) CheckOut(ctx context.Context, bookingID uint, in CheckOutInput) (*models.Booking, error) {
	if in.FinalAmount != nil && in.FinalAmount.IsNegative() {
		return nil, invalid("final amount cannot be negative")
	}
	for i, c := range in.ExtraCharges {
		if strings.TrimSpace(c.Description) == "" {
			return nil, invalid("extra charge %d: description is required", i+1)
		}
		if !c.Amount.IsPositive() {
			return nil, invalid("extra charge %d: amount must be positive", i+1)
		}
	}

	return s.transition(ctx, bookingID, models.BookingCheckedOut, func(tx *gorm.DB, b *models.Booking, a *models.RoomAssignment, now time.Time) error {
		if err := tx.Model(&models.RoomAssignment{}).Where("id = ?", a.ID).Update("check_out_time", now).Error; err != nil {
			return err
		}
		if err := setRoomStatus(tx, a.RoomID, models.RoomCleaning); err != nil {
			return err
		}
		return s.finalizeAmount(tx, b.ID, in.FinalAmount, in.ExtraCharges)
	})
}

// finalizeAmount overwrites the total when a final amount is supplied and
// appends each charge with its own timestamp. Nothing is recomputed.
func (s *BookingService) finalizeAmount(tx *gorm.DB, bookingID uint, finalAmount *decimal.Decimal, charges []ChargeInput) error {
	if finalAmount != nil {
		if err := tx.Model(&models.Booking{}).Where("id = ?", bookingID).
			Update("total_amount", finalAmount.Round(CurrencyScale)).Error; err != nil {
			return err
		}
	}
	for _, c := range charges {
		charge := models.ExtraCharge{
			BookingID:   bookingID,
			Description: strings.TrimSpace(c.Description),
			Amount:      c.Amount.Round(CurrencyScale),
			CreatedAt:   s.now(),
		}
		if err := tx.Create(&charge).Error; err != nil {
			return err
		}
	}
	return nil
}

// Cancel is allowed from confirmed and checked-in. The room keeps its status;
// releasing it is an explicit SetRoomStatus call.
func (s *BookingService) Cancel(ctx context.Context, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, bookingID, models.BookingCancelled, nil)
}

// UpdateStatus routes a requested target status through the matching
// lifecycle operation. Targets without an operation are rejected.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID uint, status string) (*models.Booking, error) {
	to, err := models.ParseBookingStatus(status)
	if err != nil {
		return nil, invalid("%v", err)
	}
	switch to {
	case models.BookingCheckedIn:
		return s.CheckIn(ctx, bookingID)
	case models.BookingCheckedOut:
		return s.CheckOut(ctx, bookingID, CheckOutInput{})
	case models.BookingCancelled:
		return s.Cancel(ctx, bookingID)
	default:
		return nil, fmt.Errorf("%w: %s is not a reachable target", ErrInvalidTransition, to)
	}
}

// ----------------------------------------------------
// Reads
// ----------------------------------------------------

func (s *BookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Staff").
		Preload("Assignment.Room.RoomType").
		Preload("ExtraCharges", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_date DESC") }).
		First(&b, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("booking", id)
		}
		return nil, classify(s.Log, "get booking", err)
	}
	return &b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := s.DB.WithContext(ctx).
		Preload("Guest").
		Preload("Staff").
		Preload("Assignment.Room.RoomType")

	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.FromDate != nil && f.ToDate != nil {
		q = q.Where("check_in_date >= ? AND check_out_date <= ?", StayDate(*f.FromDate), StayDate(*f.ToDate))
	}
	if f.GuestID != 0 {
		q = q.Where("guest_id = ?", f.GuestID)
	}

	var list []models.Booking
	if err := q.Order("booking_date DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, classify(s.Log, "list bookings", err)
	}
	return list, nil
}

func (s *BookingService) Balance(ctx context.Context, bookingID uint) (*Balance, error) {
	b, err := s.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	bal := &Balance{
		BookingID:    b.ID,
		TotalAmount:  b.TotalAmount,
		ExtraCharges: decimal.Zero,
		Paid:         decimal.Zero,
	}
	for _, c := range b.ExtraCharges {
		bal.ExtraCharges = bal.ExtraCharges.Add(c.Amount)
	}
	for _, p := range b.Payments {
		if p.Status == models.PaymentCompleted {
			bal.Paid = bal.Paid.Add(p.Amount)
		}
	}
	bal.Outstanding = bal.TotalAmount.Sub(bal.Paid)
	return bal, nil
}
