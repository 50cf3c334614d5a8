package editor

import (
	"errors"
	"image/color"
	"testing"

	"github.com/piwi3910/seatmap/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateObjectEmptySelectionIsNoop(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})
	sess.Deselect()
	before := undoLen(sess)

	err := sess.UpdateObject(Properties{Fill: Ptr("#FF0000")})
	assert.NoError(t, err)
	assert.Equal(t, before, undoLen(sess))
	assert.Equal(t, model.TransparentFill, sess.Scene().Objects[0].Style.Fill)
}

func TestUpdateObjectSingleCommit(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})
	sess.CreateSeat(model.Point{X: 40, Y: 10})
	sess.SelectAll()
	before := undoLen(sess)

	require.NoError(t, sess.UpdateObject(Properties{Fill: Ptr("#00ff00"), StrokeWidth: Ptr(2.0)}))

	assert.Equal(t, before+1, undoLen(sess))
	for _, o := range sess.Scene().Objects {
		assert.Equal(t, "#00FF00", o.Style.Fill)
		assert.Equal(t, 2.0, o.Style.StrokeWidth)
	}
}

func TestUpdateObjectUnchangedValuesDoNotCommit(t *testing.T) {
	sess, _ := newTestSession(t)
	seat := sess.CreateSeat(model.Point{X: 10, Y: 10})
	before := undoLen(sess)

	require.NoError(t, sess.UpdateObject(Properties{Left: Ptr(seat.Geometry.Left)}))
	assert.Equal(t, before, undoLen(sess))
}

func TestUpdateObjectStrokeNormalized(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateZone(model.Point{X: 10, Y: 10})

	require.NoError(t, sess.UpdateObject(Properties{Stroke: color.NRGBA{R: 255, A: 255}}))
	assert.Equal(t, "#FF0000", sess.Scene().Objects[0].Style.Stroke)
}

func TestUpdateObjectSeatSizeIsDiameter(t *testing.T) {
	sess, _ := newTestSession(t)
	seat := sess.CreateSeat(model.Point{X: 10, Y: 10})

	require.NoError(t, sess.UpdateObject(Properties{Width: Ptr(40.0)}))

	assert.Equal(t, 20.0, seat.Seat.Radius)
	assert.Equal(t, 40.0, seat.Geometry.Width)
	assert.Equal(t, 40.0, seat.Geometry.Height)
	assert.Equal(t, 1.0, seat.Geometry.ScaleX)
	assert.Equal(t, 1.0, seat.Geometry.ScaleY)
}

func TestUpdateObjectZoneRenderedSizeResetsScale(t *testing.T) {
	sess, _ := newTestSession(t)
	zone := sess.CreateZone(model.Point{X: 10, Y: 10})
	zone.Geometry.ScaleX = 2 // rendered 200x100

	require.NoError(t, sess.UpdateObject(Properties{Width: Ptr(300.0)}))

	assert.Equal(t, 300.0, zone.Geometry.Width)
	assert.Equal(t, 1.0, zone.Geometry.ScaleX)
	assert.Equal(t, 300.0, zone.Geometry.RenderedWidth())
	assert.Equal(t, 100.0, zone.Geometry.RenderedHeight())

	// A second edit is absolute, not compounded.
	require.NoError(t, sess.UpdateObject(Properties{Width: Ptr(150.0)}))
	assert.Equal(t, 150.0, zone.Geometry.RenderedWidth())
}

func TestUpdateObjectAspectLock(t *testing.T) {
	sess, _ := newTestSession(t)
	zone := sess.CreateZone(model.Point{X: 10, Y: 10})
	zone.Geometry.Height = 50 // 100x50
	sess.SetAspectLock(true)

	require.NoError(t, sess.UpdateObject(Properties{Width: Ptr(200.0)}))
	assert.Equal(t, 200.0, zone.Geometry.Width)
	assert.Equal(t, 100.0, zone.Geometry.Height)

	require.NoError(t, sess.UpdateObject(Properties{Height: Ptr(50.0)}))
	assert.Equal(t, 100.0, zone.Geometry.Width)
	assert.Equal(t, 50.0, zone.Geometry.Height)
}

func TestUpdateObjectLabelScalePinned(t *testing.T) {
	sess, _ := newTestSession(t)
	label := sess.CreateLabel(model.Point{X: 10, Y: 10}, "Stage")
	label.Geometry.ScaleX = 2
	label.Geometry.ScaleY = 2

	require.NoError(t, sess.UpdateObject(Properties{Text: Ptr("Main Stage")}))

	assert.Equal(t, "Main Stage", label.Label.Text)
	assert.Equal(t, 1.0, label.Geometry.ScaleX)
	assert.Equal(t, 1.0, label.Geometry.ScaleY)
	assert.Equal(t, 2*model.DefaultLabelWidth, label.Geometry.Width)
}

func TestUpdateObjectLabelFontSize(t *testing.T) {
	sess, _ := newTestSession(t)
	label := sess.CreateLabel(model.Point{X: 10, Y: 10}, "Stage")

	require.NoError(t, sess.UpdateObject(Properties{FontSize: Ptr(40.0)}))
	assert.Equal(t, 40.0, label.Label.FontSize)
	assert.Equal(t, 1.0, label.Geometry.ScaleY)
}

func TestUpdateObjectRotationBoundaryCorrection(t *testing.T) {
	sess, _ := newTestSession(t) // 800x600 canvas
	zone := sess.CreateZone(model.Point{X: 100, Y: 100})

	// At 90 degrees a 100x100 zone spans [left-100, left] horizontally, so a
	// requested left of 812 overhangs the right edge by 12.
	require.NoError(t, sess.UpdateObject(Properties{Left: Ptr(812.0), Angle: Ptr(90.0)}))

	assert.InDelta(t, 800.0, zone.Geometry.Left, 1e-9)
	assert.Equal(t, 90.0, zone.Geometry.Angle)
	b := zone.BoundingRect()
	assert.LessOrEqual(t, b.Max.X, 800.0+1e-9)
	assert.GreaterOrEqual(t, b.Min.X, -1e-9)
}

func TestUpdateObjectRotationInsideCanvasDoesNotMove(t *testing.T) {
	sess, _ := newTestSession(t)
	zone := sess.CreateZone(model.Point{X: 300, Y: 300})

	require.NoError(t, sess.UpdateObject(Properties{Angle: Ptr(45.0)}))
	assert.Equal(t, 300.0, zone.Geometry.Left)
	assert.Equal(t, 300.0, zone.Geometry.Top)
}

func TestUpdateObjectDuplicateSeatNumberWithheld(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})
	sess.CreateSeat(model.Point{X: 40, Y: 10})
	third := sess.CreateSeat(model.Point{X: 70, Y: 10})
	require.Equal(t, "3", third.Seat.SeatNumber)

	err := sess.UpdateObject(Properties{SeatNumber: Ptr("2"), Category: Ptr("vip")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrDuplicateSeatNumber))

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "seatNumber", verr.Field)

	assert.Equal(t, "3", third.Seat.SeatNumber)
	assert.Equal(t, "vip", third.Seat.Category, "other fields still apply")
}

func TestUpdateObjectSeatNumberUnique(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.CreateSeat(model.Point{X: 10, Y: 10})
	seat := sess.CreateSeat(model.Point{X: 40, Y: 10})

	require.NoError(t, sess.UpdateObject(Properties{SeatNumber: Ptr("A12")}))
	assert.Equal(t, "A12", seat.Seat.SeatNumber)
}

func TestUpdateObjectRejectsUnknownStatus(t *testing.T) {
	sess, _ := newTestSession(t)
	seat := sess.CreateSeat(model.Point{X: 10, Y: 10})

	err := sess.UpdateObject(Properties{Status: Ptr(model.SeatStatus("lost"))})
	require.Error(t, err)
	assert.Equal(t, model.StatusAvailable, seat.Seat.Status)

	require.NoError(t, sess.UpdateObject(Properties{Status: Ptr(model.StatusSold)}))
	assert.Equal(t, model.StatusSold, seat.Seat.Status)
}

func TestUpdateObjectMixedFieldsSurvive(t *testing.T) {
	sess, _ := newTestSession(t)
	a := sess.CreateSeat(model.Point{X: 10, Y: 10})
	b := sess.CreateSeat(model.Point{X: 40, Y: 10})
	a.Seat.Category = "vip"
	b.Seat.Category = "balcony"
	sess.SelectAll()
	require.True(t, sess.Merged().IsMixed(FieldCategory))

	require.NoError(t, sess.UpdateObject(Properties{Fill: Ptr("#123456")}))

	assert.Equal(t, "vip", a.Seat.Category)
	assert.Equal(t, "balcony", b.Seat.Category)
	assert.Equal(t, "#123456", sess.Merged().Value(FieldFill))
	assert.Equal(t, Mixed, sess.Merged().Value(FieldCategory))
}

func TestUpdateObjectVariantFieldsOnlyTouchOwners(t *testing.T) {
	sess, _ := newTestSession(t)
	seat := sess.CreateSeat(model.Point{X: 10, Y: 10})
	zone := sess.CreateZone(model.Point{X: 100, Y: 100})
	sess.SelectAll()

	require.NoError(t, sess.UpdateObject(Properties{Name: Ptr("Balcony"), Price: Ptr(45.0)}))

	assert.Equal(t, "Balcony", zone.Zone.Name)
	assert.Equal(t, 45.0, seat.Seat.Price)
}

func TestMoveSelection(t *testing.T) {
	sess, _ := newTestSession(t)
	seat := sess.CreateSeat(model.Point{X: 10, Y: 10})
	before := undoLen(sess)

	sess.MoveSelection(5, -3)
	assert.Equal(t, 15.0, seat.Geometry.Left)
	assert.Equal(t, 7.0, seat.Geometry.Top)
	assert.Equal(t, before+1, undoLen(sess))
}
