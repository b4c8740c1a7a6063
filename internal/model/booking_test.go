package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_IsValid(t *testing.T) {
	assert.True(t, BookingStatusPending.IsValid())
	assert.True(t, BookingStatusConfirmed.IsValid())
	assert.True(t, BookingStatusCancelled.IsValid())
	assert.True(t, BookingStatusCheckedIn.IsValid())
	assert.False(t, BookingStatus("paid").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	t.Run("pending 可確認或取消", func(t *testing.T) {
		assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusConfirmed))
		assert.True(t, BookingStatusPending.CanTransitionTo(BookingStatusCancelled))
		assert.False(t, BookingStatusPending.CanTransitionTo(BookingStatusCheckedIn))
	})

	t.Run("confirmed 可取消或驗票", func(t *testing.T) {
		assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCancelled))
		assert.True(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusCheckedIn))
		assert.False(t, BookingStatusConfirmed.CanTransitionTo(BookingStatusPending))
	})

	t.Run("cancelled 是終態", func(t *testing.T) {
		assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusPending))
		assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusConfirmed))
		assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusCheckedIn))
	})

	t.Run("checked_in 是終態", func(t *testing.T) {
		assert.False(t, BookingStatusCheckedIn.CanTransitionTo(BookingStatusPending))
		assert.False(t, BookingStatusCheckedIn.CanTransitionTo(BookingStatusConfirmed))
		assert.False(t, BookingStatusCheckedIn.CanTransitionTo(BookingStatusCancelled))
	})
}

func TestRSVPStatus_IsValid(t *testing.T) {
	assert.True(t, RSVPStatusGoing.IsValid())
	assert.True(t, RSVPStatusMaybe.IsValid())
	assert.True(t, RSVPStatusNotGoing.IsValid())
	assert.False(t, RSVPStatus("attending").IsValid())
}
