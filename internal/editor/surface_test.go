package editor

import (
	"testing"

	"github.com/piwi3910/seatmap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordEvents(s Surface) *[]EventName {
	var got []EventName
	for _, name := range []EventName{
		EventObjectAdded, EventObjectRemoved, EventObjectModified,
		EventSelectionCreated, EventSelectionUpdated, EventSelectionCleared,
	} {
		s.On(name, func(ev Event) { got = append(got, ev.Name) })
	}
	return &got
}

func TestMemorySurfaceEvents(t *testing.T) {
	s := NewMemorySurface(nil)
	got := recordEvents(s)

	a := model.NewSeat(model.Point{}, "1")
	b := model.NewZone(model.Point{X: 100, Y: 100})
	s.Add(a, b)
	s.SetActiveObjects(a)
	s.SetActiveObjects(a, b)
	s.Remove(a)
	s.Remove(b)

	assert.Equal(t, []EventName{
		EventObjectAdded, EventObjectAdded,
		EventSelectionCreated, EventSelectionUpdated,
		EventObjectRemoved, EventObjectRemoved, EventSelectionCleared,
	}, *got)
}

func TestMemorySurfaceIgnoresForeignSelection(t *testing.T) {
	s := NewMemorySurface(nil)
	s.SetActiveObjects(model.NewSeat(model.Point{}, "1"))
	assert.Empty(t, s.ActiveObjects())
}

func TestMemorySurfaceUnsubscribe(t *testing.T) {
	s := NewMemorySurface(nil)
	var n int
	off := s.On(EventObjectAdded, func(Event) { n++ })
	s.Add(model.NewSeat(model.Point{}, "1"))
	off()
	s.Add(model.NewSeat(model.Point{}, "2"))
	assert.Equal(t, 1, n)
}

func TestMemorySurfaceDeserializeKeepsSceneOnError(t *testing.T) {
	s := NewMemorySurface(nil)
	seat := model.NewSeat(model.Point{}, "1")
	s.Add(seat)
	s.SetActiveObjects(seat)

	err := s.Deserialize([]byte(`{"objects":[{"type":"hexagon"}]}`))
	require.Error(t, err)
	assert.Len(t, s.Scene().Objects, 1)
	assert.Len(t, s.ActiveObjects(), 1, "selection survives a failed load")
}

func TestMemorySurfaceDeserializeClearsSelection(t *testing.T) {
	s := NewMemorySurface(nil)
	seat := model.NewSeat(model.Point{}, "1")
	s.Add(seat)
	s.SetActiveObjects(seat)
	data, err := s.Serialize()
	require.NoError(t, err)

	require.NoError(t, s.Deserialize(data))
	assert.Empty(t, s.ActiveObjects())
	assert.Equal(t, 1, s.Renders())
}

func TestObjectAtReturnsTopmost(t *testing.T) {
	s := NewMemorySurface(nil)
	low := model.NewZone(model.Point{X: 0, Y: 0})
	high := model.NewZone(model.Point{X: 50, Y: 50})
	s.Add(low, high)

	assert.Equal(t, high.ID, s.ObjectAt(model.Point{X: 75, Y: 75}).ID)
	assert.Equal(t, low.ID, s.ObjectAt(model.Point{X: 10, Y: 10}).ID)
	assert.Nil(t, s.ObjectAt(model.Point{X: 500, Y: 500}))
}
