package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sceneWithSeats(numbers ...string) *Scene {
	s := NewScene(800, 600)
	for _, n := range numbers {
		s.Add(NewSeat(Point{}, n))
	}
	return s
}

func TestNextSeatNumberEmpty(t *testing.T) {
	assert.Equal(t, "1", NextSeatNumber(NewScene(800, 600)))
}

func TestNextSeatNumberSkipsNonNumeric(t *testing.T) {
	s := sceneWithSeats("3", "A12", "", "7", "VIP")
	s.Add(NewZone(Point{}))
	assert.Equal(t, "8", NextSeatNumber(s))
}

func TestNextSeatNumberOnlyNonNumeric(t *testing.T) {
	s := sceneWithSeats("A", "B")
	assert.Equal(t, "1", NextSeatNumber(s))
}

func TestNextSeatNumberIsNotReserved(t *testing.T) {
	s := sceneWithSeats("1")
	assert.Equal(t, "2", NextSeatNumber(s))
	assert.Equal(t, "2", NextSeatNumber(s), "allocator must not reserve numbers ahead of insertion")

	s.Add(NewSeat(Point{}, NextSeatNumber(s)))
	assert.Equal(t, "3", NextSeatNumber(s))
}

func TestIsSeatNumberUnique(t *testing.T) {
	s := sceneWithSeats("1", "2", "3")
	other := NewSeat(Point{}, "")
	s.Add(other)

	assert.False(t, IsSeatNumberUnique(s, "2", other.ID))
	assert.True(t, IsSeatNumberUnique(s, "4", other.ID))
}

func TestIsSeatNumberUniqueExcludesSelf(t *testing.T) {
	s := sceneWithSeats("1", "2")
	self := s.Seats()[1]
	assert.True(t, IsSeatNumberUnique(s, "2", self.ID), "a seat keeping its own number is not a duplicate")
}

func TestCheckSeatNumber(t *testing.T) {
	s := sceneWithSeats("5")
	require.NoError(t, CheckSeatNumber(s, "6", ""))

	err := CheckSeatNumber(s, "5", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSeatNumber))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "seatNumber", verr.Field)
	assert.Equal(t, "5", verr.Value)
}
