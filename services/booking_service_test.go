package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monishpeddapally/hostel-management-system/models"
)

func TestBookingFullStay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Double", 2, 75)
	r101 := f.room(t, "101", rt)
	g := f.guest(t, "Eve", "Tan")

	b, err := f.bookings.CreateBooking(ctx, CreateBookingInput{
		GuestID:        g.ID,
		RoomID:         r101.ID,
		CheckIn:        day("2025-04-01"),
		CheckOut:       day("2025-04-03"),
		NumberOfGuests: 2,
		BookingSource:  "phone",
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, "150.00", b.TotalAmount.StringFixed(2))
	assert.Equal(t, models.AssignmentAssigned, b.Assignment.Status)
	assert.Equal(t, r101.ID, b.Assignment.RoomID)
	assert.Regexp(t, `^BK-[0-9A-F]{12}$`, b.ReferenceCode)
	assert.Equal(t, "Eve", b.Guest.FirstName)
	assert.Equal(t, models.RoomAvailable, f.reloadRoom(t, r101.ID).Status)

	b, err = f.bookings.CheckIn(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, b.Status)
	assert.Equal(t, models.AssignmentOccupied, b.Assignment.Status)
	require.NotNil(t, b.Assignment.CheckInTime)
	assert.True(t, fixedNow.Equal(*b.Assignment.CheckInTime))
	assert.Equal(t, models.RoomOccupied, f.reloadRoom(t, r101.ID).Status)

	final := decimal.NewFromInt(120)
	b, err = f.bookings.CheckOut(ctx, b.ID, CheckOutInput{
		FinalAmount:  &final,
		ExtraCharges: []ChargeInput{{Description: "minibar", Amount: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, b.Status)
	assert.Equal(t, models.AssignmentVacated, b.Assignment.Status)
	require.NotNil(t, b.Assignment.CheckOutTime)
	assert.Equal(t, "120.00", b.TotalAmount.StringFixed(2))
	require.Len(t, b.ExtraCharges, 1)
	assert.Equal(t, "minibar", b.ExtraCharges[0].Description)
	assert.Equal(t, "20.00", b.ExtraCharges[0].Amount.StringFixed(2))
	assert.Equal(t, models.RoomCleaning, f.reloadRoom(t, r101.ID).Status)
}

func TestSameDayArrivalWaitsForDeparture(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)

	leaving := f.book(t, f.guest(t, "Ana", "Lim"), r, "2025-04-01", "2025-04-03")
	arriving := f.book(t, f.guest(t, "Ben", "Ong"), r, "2025-04-03", "2025-04-05")

	_, err := f.bookings.CheckIn(ctx, leaving.ID)
	require.NoError(t, err)

	_, err = f.bookings.CheckIn(ctx, arriving.ID)
	assert.ErrorIs(t, err, ErrRoomUnavailable)
	got, err := f.bookings.GetBooking(ctx, arriving.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
	assert.Equal(t, models.AssignmentAssigned, got.Assignment.Status)

	_, err = f.bookings.CheckOut(ctx, leaving.ID, CheckOutInput{})
	require.NoError(t, err)
	assert.Equal(t, models.RoomCleaning, f.reloadRoom(t, r.ID).Status)

	_, err = f.bookings.CheckIn(ctx, arriving.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, f.reloadRoom(t, r.ID).Status)

	// The arriving guest now holds the room.
	_, err = f.rooms.SetRoomStatus(ctx, r.ID, models.RoomAvailable)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckOutWithoutFinalAmountKeepsTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Fay", "Wu")

	b := f.book(t, g, r, "2025-04-01", "2025-04-04")
	_, err := f.bookings.CheckIn(ctx, b.ID)
	require.NoError(t, err)

	b, err = f.bookings.CheckOut(ctx, b.ID, CheckOutInput{})
	require.NoError(t, err)
	assert.Equal(t, "150.00", b.TotalAmount.StringFixed(2))
	assert.Empty(t, b.ExtraCharges)
}

func TestCheckOutRejectsBadCharges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Gus", "Ma")
	b := f.book(t, g, r, "2025-04-01", "2025-04-02")
	_, err := f.bookings.CheckIn(ctx, b.ID)
	require.NoError(t, err)

	_, err = f.bookings.CheckOut(ctx, b.ID, CheckOutInput{ExtraCharges: []ChargeInput{{Description: "", Amount: decimal.NewFromInt(5)}}})
	assert.ErrorIs(t, err, ErrValidation)

	neg := decimal.NewFromInt(-1)
	_, err = f.bookings.CheckOut(ctx, b.ID, CheckOutInput{FinalAmount: &neg})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := f.bookings.GetBooking(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedIn, got.Status)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Hal", "Yu")

	base := CreateBookingInput{GuestID: g.ID, RoomID: r.ID, CheckIn: day("2025-04-01"), CheckOut: day("2025-04-02"), NumberOfGuests: 1}

	in := base
	in.CheckOut = in.CheckIn
	_, err := f.bookings.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidRange)

	in = base
	in.NumberOfGuests = 2
	_, err = f.bookings.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	in = base
	in.NumberOfGuests = 0
	_, err = f.bookings.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)

	in = base
	in.RoomID = 999
	_, err = f.bookings.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, ErrNotFound)

	in = base
	in.GuestID = 999
	_, err = f.bookings.CreateBooking(ctx, in)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.db.Model(&r).Update("active", false).Error)
	_, err = f.bookings.CreateBooking(ctx, base)
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	var n int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&models.RoomAssignment{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Ivy", "Lo")

	f.book(t, g, r, "2025-04-01", "2025-04-05")

	_, err := f.bookings.CreateBooking(ctx, CreateBookingInput{
		GuestID: g.ID, RoomID: r.ID, CheckIn: day("2025-04-04"), CheckOut: day("2025-04-06"), NumberOfGuests: 1,
	})
	assert.ErrorIs(t, err, ErrRoomUnavailable)

	// Back-to-back is fine.
	f.book(t, g, r, "2025-04-05", "2025-04-06")
}

func TestConcurrentCreateBookingOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Jo", "Po")

	const workers = 2
	var wg sync.WaitGroup
	errs := make([]error, workers)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.bookings.CreateBooking(ctx, CreateBookingInput{
				GuestID: g.ID, RoomID: r.ID, CheckIn: day("2025-04-01"), CheckOut: day("2025-04-03"), NumberOfGuests: 1,
			})
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, unavailable int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrRoomUnavailable):
			unavailable++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, unavailable)
}

func TestIllegalTransitionsLeaveStateUnchanged(t *testing.T) {
	type op struct {
		name string
		to   models.BookingStatus
		run  func(f *fixture, id uint) error
	}
	ops := []op{
		{"check-in", models.BookingCheckedIn, func(f *fixture, id uint) error {
			_, err := f.bookings.CheckIn(context.Background(), id)
			return err
		}},
		{"check-out", models.BookingCheckedOut, func(f *fixture, id uint) error {
			_, err := f.bookings.CheckOut(context.Background(), id, CheckOutInput{})
			return err
		}},
		{"cancel", models.BookingCancelled, func(f *fixture, id uint) error {
			_, err := f.bookings.Cancel(context.Background(), id)
			return err
		}},
	}

	// Each setup path drives a fresh booking into the named status.
	setups := map[models.BookingStatus][]string{
		models.BookingConfirmed:  {},
		models.BookingCheckedIn:  {"check-in"},
		models.BookingCheckedOut: {"check-in", "check-out"},
		models.BookingCancelled:  {"cancel"},
		models.BookingNoShow:     nil,
	}
	byName := map[string]op{}
	for _, o := range ops {
		byName[o.name] = o
	}

	for from, path := range setups {
		for _, o := range ops {
			if models.CanTransition(from, o.to) {
				continue
			}
			t.Run(string(from)+" via "+o.name, func(t *testing.T) {
				f := newFixture(t)
				rt := f.roomType(t, "Single", 1, 50)
				r := f.room(t, "101", rt)
				g := f.guest(t, "Kim", "Su")
				b := f.book(t, g, r, "2025-04-01", "2025-04-02")
				for _, step := range path {
					require.NoError(t, byName[step].run(f, b.ID))
				}
				if from == models.BookingNoShow {
					require.NoError(t, f.db.Model(&models.Booking{}).Where("id = ?", b.ID).Update("status", string(models.BookingNoShow)).Error)
				}

				before, err := f.bookings.GetBooking(context.Background(), b.ID)
				require.NoError(t, err)
				roomBefore := f.reloadRoom(t, r.ID)

				err = o.run(f, b.ID)
				assert.ErrorIs(t, err, ErrInvalidTransition)

				after, err := f.bookings.GetBooking(context.Background(), b.ID)
				require.NoError(t, err)
				assert.Equal(t, before.Status, after.Status)
				assert.Equal(t, before.Assignment.Status, after.Assignment.Status)
				assert.True(t, before.TotalAmount.Equal(after.TotalAmount))
				assert.Len(t, after.ExtraCharges, len(before.ExtraCharges))
				assert.Equal(t, roomBefore.Status, f.reloadRoom(t, r.ID).Status)
			})
		}
	}
}

func TestCancelKeepsRoomStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Lou", "Ng")

	b := f.book(t, g, r, "2025-04-01", "2025-04-02")
	_, err := f.bookings.CheckIn(ctx, b.ID)
	require.NoError(t, err)

	b, err = f.bookings.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, b.Status)
	assert.Equal(t, models.AssignmentOccupied, b.Assignment.Status)
	assert.Equal(t, models.RoomOccupied, f.reloadRoom(t, r.ID).Status)

	// The dates are free again.
	f.book(t, g, r, "2025-04-01", "2025-04-02")
}

func TestUpdateStatusDispatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Max", "Oh")
	b := f.book(t, g, r, "2025-04-01", "2025-04-02")

	_, err := f.bookings.UpdateStatus(ctx, b.ID, "confirmed")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.bookings.UpdateStatus(ctx, b.ID, "no-show")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.bookings.UpdateStatus(ctx, b.ID, "lost")
	assert.ErrorIs(t, err, ErrValidation)

	got, err := f.bookings.UpdateStatus(ctx, b.ID, "checked-in")
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, f.reloadRoom(t, r.ID).Status)

	got, err = f.bookings.UpdateStatus(ctx, got.ID, "checked-out")
	require.NoError(t, err)
	assert.Equal(t, models.BookingCheckedOut, got.Status)
	assert.Equal(t, models.RoomCleaning, f.reloadRoom(t, r.ID).Status)

	_, err = f.bookings.UpdateStatus(ctx, 12345, "cancelled")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActiveBookingsNeverOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Ned", "Po")

	ranges := [][2]string{
		{"2025-05-01", "2025-05-04"},
		{"2025-05-03", "2025-05-06"},
		{"2025-05-04", "2025-05-05"},
		{"2025-04-28", "2025-05-02"},
		{"2025-05-05", "2025-05-09"},
		{"2025-05-02", "2025-05-03"},
	}
	for _, rg := range ranges {
		_, err := f.bookings.CreateBooking(ctx, CreateBookingInput{
			GuestID: g.ID, RoomID: r.ID, CheckIn: day(rg[0]), CheckOut: day(rg[1]), NumberOfGuests: 1,
		})
		if err != nil {
			require.ErrorIs(t, err, ErrRoomUnavailable)
		}
	}

	list, err := f.bookings.ListBookings(ctx, BookingFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, list)
	for i := range list {
		for j := i + 1; j < len(list); j++ {
			a, b := list[i], list[j]
			assert.True(t, !a.CheckOutDate.After(b.CheckInDate) || !b.CheckOutDate.After(a.CheckInDate),
				"bookings %d and %d overlap", a.ID, b.ID)
		}
	}
}

func TestListBookingsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r1 := f.room(t, "101", rt)
	r2 := f.room(t, "102", rt)
	g1 := f.guest(t, "Oli", "Ra")
	g2 := f.guest(t, "Pia", "Sa")

	b1 := f.book(t, g1, r1, "2025-04-01", "2025-04-03")
	f.book(t, g2, r2, "2025-04-02", "2025-04-04")
	f.book(t, g1, r2, "2025-05-01", "2025-05-02")
	_, err := f.bookings.Cancel(ctx, b1.ID)
	require.NoError(t, err)

	list, err := f.bookings.ListBookings(ctx, BookingFilter{GuestID: g1.ID})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = f.bookings.ListBookings(ctx, BookingFilter{Status: models.BookingCancelled})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b1.ID, list[0].ID)

	from, to := day("2025-04-01"), day("2025-04-30")
	list, err = f.bookings.ListBookings(ctx, BookingFilter{FromDate: &from, ToDate: &to})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "101", list[len(list)-1].Assignment.Room.RoomNumber)
}

func TestGetBookingNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.bookings.GetBooking(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)
}
