package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/monishpeddapally/hostel-management-system/config"
	"github.com/monishpeddapally/hostel-management-system/models"
)

// fixedNow is the clock every fixture service runs on.
var fixedNow = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	rooms    *RoomService
	bookings *BookingService
	guests   *GuestService
	payments *PaymentService
	reports  *ReportService
	auth     *AuthService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDatabase(config.DBConfig{
		Driver:   config.DriverSQLite,
		DSN:      "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)",
		LogLevel: "silent",
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	log := zap.NewNop()
	clock := func() time.Time { return fixedNow }

	f := &fixture{
		db:       db,
		rooms:    NewRoomService(db, log),
		bookings: NewBookingService(db, log),
		guests:   NewGuestService(db, log),
		payments: NewPaymentService(db, log),
		reports:  NewReportService(db, log),
		auth:     NewAuthService(db, log, "test-secret", 8*time.Hour),
	}
	f.bookings.Now = clock
	f.payments.Now = clock
	f.auth.Now = clock
	return f
}

func (f *fixture) roomType(t *testing.T, name string, capacity int, price int64) models.RoomType {
	t.Helper()
	rt := models.RoomType{Name: name, Capacity: capacity, BasePrice: decimal.NewFromInt(price)}
	require.NoError(t, f.db.Create(&rt).Error)
	return rt
}

func (f *fixture) room(t *testing.T, number string, rt models.RoomType) models.Room {
	t.Helper()
	r := models.Room{RoomNumber: number, RoomTypeID: rt.ID, Active: true, Status: models.RoomAvailable}
	require.NoError(t, f.db.Create(&r).Error)
	return r
}

func (f *fixture) guest(t *testing.T, first, last string) models.Guest {
	t.Helper()
	g := models.Guest{FirstName: first, LastName: last, Email: first + "@example.com"}
	require.NoError(t, f.db.Create(&g).Error)
	return g
}

func (f *fixture) book(t *testing.T, g models.Guest, r models.Room, checkIn, checkOut string) *models.Booking {
	t.Helper()
	b, err := f.bookings.CreateBooking(context.Background(), CreateBookingInput{
		GuestID:        g.ID,
		RoomID:         r.ID,
		CheckIn:        day(checkIn),
		CheckOut:       day(checkOut),
		NumberOfGuests: 1,
		BookingSource:  "walk-in",
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) reloadRoom(t *testing.T, id uint) models.Room {
	t.Helper()
	var r models.Room
	require.NoError(t, f.db.First(&r, id).Error)
	return r
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func roomIDs(rooms []models.Room) []uint {
	ids := make([]uint, 0, len(rooms))
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	return ids
}
