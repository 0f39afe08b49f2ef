package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dob := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
	g, err := f.guests.Create(ctx, GuestInput{
		FirstName:   "  Quinn ",
		LastName:    "Reyes",
		Email:       "quinn@example.com",
		DateOfBirth: &dob,
		Nationality: "PH",
	})
	require.NoError(t, err)
	assert.Equal(t, "Quinn", g.FirstName)
	assert.Equal(t, "Quinn Reyes", g.FullName())

	g, err = f.guests.Update(ctx, g.ID, GuestInput{FirstName: "Quinn", LastName: "Reyes-Cruz", Phone: "+63 900"})
	require.NoError(t, err)
	assert.Equal(t, "Reyes-Cruz", g.LastName)
	assert.Equal(t, "+63 900", g.Phone)

	got, err := f.guests.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Reyes-Cruz", got.LastName)

	list, err := f.guests.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.guests.Delete(ctx, g.ID))
	_, err = f.guests.GetByID(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuestValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.guests.Create(ctx, GuestInput{FirstName: "Solo"})
	assert.ErrorIs(t, err, ErrValidation)

	future := time.Now().Add(48 * time.Hour)
	_, err = f.guests.Create(ctx, GuestInput{FirstName: "Tia", LastName: "Uy", DateOfBirth: &future})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.guests.Update(ctx, 404, GuestInput{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGuestWithBookingsRefused(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	rt := f.roomType(t, "Single", 1, 50)
	r := f.room(t, "101", rt)
	g := f.guest(t, "Val", "Wong")

	b := f.book(t, g, r, "2025-04-01", "2025-04-02")
	_, err := f.bookings.Cancel(ctx, b.ID)
	require.NoError(t, err)

	// Even a cancelled booking keeps the guest.
	err = f.guests.Delete(ctx, g.ID)
	assert.ErrorIs(t, err, ErrGuestHasBookings)

	_, err = f.guests.GetByID(ctx, g.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.guests.Delete(ctx, 999), ErrNotFound)
}
