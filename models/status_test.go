package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := map[[2]BookingStatus]bool{
		{BookingConfirmed, BookingCheckedIn}:  true,
		{BookingConfirmed, BookingCancelled}:  true,
		{BookingCheckedIn, BookingCheckedOut}: true,
		{BookingCheckedIn, BookingCancelled}:  true,
	}
	for _, from := range BookingStatuses {
		for _, to := range BookingStatuses {
			want := allowed[[2]BookingStatus{from, to}]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
	assert.False(t, CanTransition("bogus", BookingCancelled))
}

func TestTerminalStatuses(t *testing.T) {
	assert.False(t, BookingConfirmed.Terminal())
	assert.False(t, BookingCheckedIn.Terminal())
	assert.True(t, BookingCheckedOut.Terminal())
	assert.True(t, BookingCancelled.Terminal())
	assert.True(t, BookingNoShow.Terminal())
}

func TestBlocks(t *testing.T) {
	assert.True(t, BookingConfirmed.Blocks())
	assert.True(t, BookingCheckedIn.Blocks())
	assert.True(t, BookingCheckedOut.Blocks())
	assert.False(t, BookingCancelled.Blocks())
	assert.False(t, BookingNoShow.Blocks())
}

func TestParseBookingStatus(t *testing.T) {
	st, err := ParseBookingStatus("checked-in")
	require.NoError(t, err)
	assert.Equal(t, BookingCheckedIn, st)

	_, err = ParseBookingStatus("checked_in")
	assert.Error(t, err)
}

func TestAssignmentStatusFor(t *testing.T) {
	as, ok := AssignmentStatusFor(BookingCheckedIn)
	require.True(t, ok)
	assert.Equal(t, AssignmentOccupied, as)

	as, ok = AssignmentStatusFor(BookingCheckedOut)
	require.True(t, ok)
	assert.Equal(t, AssignmentVacated, as)

	_, ok = AssignmentStatusFor(BookingCancelled)
	assert.False(t, ok)
}

func TestParseRoomStatus(t *testing.T) {
	for _, s := range []string{"available", "occupied", "cleaning", "maintenance"} {
		_, err := ParseRoomStatus(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseRoomStatus("dirty")
	assert.Error(t, err)
}
