package editor

import (
	"errors"
	"log/slog"

	"github.com/piwi3910/seatmap/internal/logging"
	"github.com/piwi3910/seatmap/internal/model"
)

// Options configures a Session.
type Options struct {
	GridPitch    float64 // seat spacing for multi-seat drags
	HistoryDepth int     // 0 = unbounded
	AspectLock   bool
	SeatRadius   float64
	SeatCategory string
	SeatPrice    float64
}

// DefaultOptions returns the built-in editor defaults.
func DefaultOptions() Options {
	return OptionsFromConfig(model.DefaultAppConfig())
}

// OptionsFromConfig derives session options from the application config.
func OptionsFromConfig(cfg model.AppConfig) Options {
	return Options{
		GridPitch:    cfg.GridPitch,
		HistoryDepth: cfg.HistoryDepth,
		AspectLock:   cfg.AspectLock,
		SeatRadius:   cfg.SeatRadius,
		SeatCategory: cfg.SeatCategory,
		SeatPrice:    cfg.SeatPrice,
	}
}

// Session is one editing session over a Surface. It owns the history,
// clipboard, tool state and the merged property view. A Session is not safe
// for concurrent use.
type Session struct {
	surface   Surface
	history   *History
	clipboard Clipboard
	opts      Options
	log       *logging.Logger

	tool       ToolMode
	action     ToolAction
	aspectLock bool
	anchor     *model.Point

	merged    MergedProperties
	listeners []func(MergedProperties)

	batching int
	dirty    bool
	dragging bool
	unsubs   []func()
}

// NewSession attaches a session to surface and records the current scene as
// the history baseline.
func NewSession(surface Surface, opts Options, log *logging.Logger) *Session {
	if log == nil {
		log = logging.Discard()
	}
	if opts.GridPitch <= 0 {
		opts.GridPitch = DefaultOptions().GridPitch
	}
	if opts.SeatRadius <= 0 {
		opts.SeatRadius = model.DefaultSeatRadius
	}
	if opts.SeatCategory == "" {
		opts.SeatCategory = model.DefaultSeatCategory
	}
	s := &Session{
		surface:    surface,
		history:    NewHistory(opts.HistoryDepth, log),
		opts:       opts,
		log:        log.WithComponent("editor"),
		aspectLock: opts.AspectLock,
		merged:     MergedProperties{},
	}

	for _, name := range []EventName{EventObjectAdded, EventObjectRemoved, EventObjectModified} {
		s.unsubs = append(s.unsubs, surface.On(name, s.onSceneChanged))
	}
	for _, name := range []EventName{
		EventSelectionCreated, EventSelectionUpdated,
		EventObjectMoving, EventObjectRotating, EventObjectScaling, EventObjectModified,
	} {
		s.unsubs = append(s.unsubs, surface.On(name, func(Event) { s.refreshMerged() }))
	}
	s.unsubs = append(s.unsubs, surface.On(EventSelectionCleared, func(Event) { s.resetMerged() }))

	for _, o := range surface.Objects() {
		model.ApplyControlDefaults(o)
	}
	if err := s.history.Reset(surface); err != nil {
		s.log.Error("failed to record initial state", slog.String("error", err.Error()))
	}
	return s
}

// Close detaches the session from its surface.
func (s *Session) Close() {
	for _, off := range s.unsubs {
		off()
	}
	s.unsubs = nil
}

// Surface returns the surface the session edits.
func (s *Session) Surface() Surface { return s.surface }

// Scene returns the live scene.
func (s *Session) Scene() *model.Scene { return s.surface.Scene() }

// History exposes the undo/redo state.
func (s *Session) History() *History { return s.history }

// Clipboard exposes the clipboard contents.
func (s *Session) Clipboard() *Clipboard { return &s.clipboard }

// Options returns the session options.
func (s *Session) Options() Options { return s.opts }

func (s *Session) onSceneChanged(Event) {
	if s.history.Applying() {
		return
	}
	if s.batching > 0 {
		s.dirty = true
		return
	}
	s.commit()
}

func (s *Session) commit() {
	if _, err := s.history.Commit(s.surface); err != nil {
		s.log.Error("commit failed", slog.String("error", err.Error()))
	}
}

// batch runs fn with scene-change commits deferred, then makes at most one commit.
func (s *Session) batch(fn func() error) error {
	s.batching++
	err := fn()
	s.batching--
	if s.batching == 0 && s.dirty {
		s.dirty = false
		if _, cerr := s.history.Commit(s.surface); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}
	return err
}

// Merged returns the merged property view of the current selection.
func (s *Session) Merged() MergedProperties { return s.merged }

// OnPropertiesChanged registers a listener called whenever the merged view changes.
func (s *Session) OnPropertiesChanged(fn func(MergedProperties)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Session) refreshMerged() {
	s.merged = MergeProperties(s.surface.ActiveObjects())
	s.notify()
}

func (s *Session) resetMerged() {
	s.merged = MergedProperties{}
	s.notify()
}

func (s *Session) notify() {
	for _, fn := range s.listeners {
		fn(s.merged)
	}
}

// ToolMode returns the active tool.
func (s *Session) ToolMode() ToolMode { return s.tool }

// SetToolMode switches the active tool.
func (s *Session) SetToolMode(m ToolMode) {
	if s.tool != m {
		s.log.Debug("tool mode", slog.String("mode", m.String()))
	}
	s.tool = m
}

// ToolAction returns the last clipboard or delete action.
func (s *Session) ToolAction() ToolAction { return s.action }

// SetToolAction records a clipboard or delete action.
func (s *Session) SetToolAction(a ToolAction) { s.action = a }

// AspectLock reports whether width and height edits move together.
func (s *Session) AspectLock() bool { return s.aspectLock }

// SetAspectLock toggles proportional resizing.
func (s *Session) SetAspectLock(on bool) { s.aspectLock = on }

// SetAnchor records the last canvas click, used as the paste position.
func (s *Session) SetAnchor(p model.Point) {
	s.anchor = &p
}

// Anchor returns the last recorded canvas click.
func (s *Session) Anchor() (model.Point, bool) {
	if s.anchor == nil {
		return model.Point{}, false
	}
	return *s.anchor, true
}

// Click handles a canvas click at p for the active tool and returns the
// object it created or selected, if any.
func (s *Session) Click(p model.Point) *model.Object {
	s.SetAnchor(p)
	switch s.tool {
	case ToolOneSeat:
		return s.CreateSeat(p)
	case ToolShapeSquare:
		return s.CreateZone(p)
	case ToolText:
		defer s.SetToolMode(ToolSelect)
		return s.CreateLabel(p, "")
	case ToolMultipleSeat:
		return nil
	default:
		return s.SelectAt(p)
	}
}

// CreateSeat places a seat at p with the next free seat number.
func (s *Session) CreateSeat(p model.Point) *model.Object {
	seat := s.newSeat(p)
	s.surface.Add(seat)
	s.surface.SetActiveObjects(seat)
	s.log.Debug("seat created", slog.String("id", seat.ID), slog.String("number", seat.Seat.SeatNumber))
	return seat
}

func (s *Session) newSeat(p model.Point) *model.Object {
	seat := model.NewSeat(p, model.NextSeatNumber(s.surface.Scene()))
	seat.SetRadius(s.opts.SeatRadius)
	seat.Seat.Category = s.opts.SeatCategory
	seat.Seat.Price = s.opts.SeatPrice
	return seat
}

// CreateZone places a default zone at p.
func (s *Session) CreateZone(p model.Point) *model.Object {
	zone := model.NewZone(p)
	s.surface.Add(zone)
	s.surface.SetActiveObjects(zone)
	return zone
}

// CreateLabel places a label at p in editing state. Empty text uses the default.
func (s *Session) CreateLabel(p model.Point, text string) *model.Object {
	label := model.NewLabel(p, text)
	s.surface.Add(label)
	s.surface.SetActiveObjects(label)
	return label
}

// FinishEditing ends in-place text editing. Labels left without text are removed.
func (s *Session) FinishEditing() {
	_ = s.batch(func() error {
		for _, o := range s.surface.Objects(model.KindLabel) {
			if !o.Editing {
				continue
			}
			o.Editing = false
			if o.Label.Text == "" {
				s.surface.Remove(o)
			}
		}
		return nil
	})
	s.surface.RequestRender()
}

// AddObjects inserts externally built objects (imports) as one history step.
// Seats without a number, or with one already taken, are renumbered.
func (s *Session) AddObjects(objs ...*model.Object) []*model.Object {
	if len(objs) == 0 {
		return nil
	}
	_ = s.batch(func() error {
		for _, o := range objs {
			if o.IsSeat() && (o.Seat.SeatNumber == "" ||
				!model.IsSeatNumberUnique(s.surface.Scene(), o.Seat.SeatNumber, o.ID)) {
				o.Seat.SeatNumber = model.NextSeatNumber(s.surface.Scene())
			}
			model.ApplyControlDefaults(o)
			s.surface.Add(o)
		}
		return nil
	})
	s.surface.SetActiveObjects(objs...)
	s.surface.RequestRender()
	s.log.Info("objects added", slog.Int("count", len(objs)))
	return objs
}

// Selected returns the active objects.
func (s *Session) Selected() []*model.Object { return s.surface.ActiveObjects() }

// SelectAll selects every object on the canvas.
func (s *Session) SelectAll() {
	s.surface.SetActiveObjects(s.surface.Objects()...)
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	s.surface.DiscardActiveObject()
}

// SelectByID replaces the selection with the objects carrying the given IDs.
func (s *Session) SelectByID(ids ...string) {
	scene := s.surface.Scene()
	var objs []*model.Object
	for _, id := range ids {
		if o := scene.Find(id); o != nil {
			objs = append(objs, o)
		}
	}
	s.surface.SetActiveObjects(objs...)
}

// SelectAt selects the topmost object under p, or clears the selection.
func (s *Session) SelectAt(p model.Point) *model.Object {
	o := s.surface.ObjectAt(p)
	if o == nil {
		s.surface.DiscardActiveObject()
		return nil
	}
	s.surface.SetActiveObjects(o)
	return o
}

// DeleteSelection removes the selected objects in one history step.
func (s *Session) DeleteSelection() int {
	objs := s.surface.ActiveObjects()
	if len(objs) == 0 {
		return 0
	}
	s.action = ActionDelete
	_ = s.batch(func() error {
		s.surface.Remove(objs...)
		return nil
	})
	s.surface.DiscardActiveObject()
	s.surface.RequestRender()
	s.log.Debug("deleted selection", slog.Int("count", len(objs)))
	return len(objs)
}

// MoveSelection translates the selected objects by dx, dy.
func (s *Session) MoveSelection(dx, dy float64) {
	objs := s.surface.ActiveObjects()
	if len(objs) == 0 || (dx == 0 && dy == 0) {
		return
	}
	_ = s.batch(func() error {
		for _, o := range objs {
			o.Translate(dx, dy)
		}
		s.surface.Fire(EventObjectModified, objs...)
		return nil
	})
	s.surface.RequestRender()
}

// BringToFront moves the selected objects to the top of the z-order.
func (s *Session) BringToFront() {
	s.restack(func(scene *model.Scene, o *model.Object) {
		scene.MoveTo(o.ID, len(scene.Objects))
	}, false)
}

// SendToBack moves the selected objects to the bottom of the z-order.
func (s *Session) SendToBack() {
	s.restack(func(scene *model.Scene, o *model.Object) {
		scene.MoveTo(o.ID, 0)
	}, true)
}

func (s *Session) restack(move func(*model.Scene, *model.Object), reverse bool) {
	objs := s.surface.ActiveObjects()
	if len(objs) == 0 {
		return
	}
	scene := s.surface.Scene()
	// Walk in z-order so the selection keeps its relative stacking.
	ordered := make([]*model.Object, 0, len(objs))
	for _, o := range scene.Objects {
		for _, sel := range objs {
			if sel == o {
				ordered = append(ordered, o)
				break
			}
		}
	}
	_ = s.batch(func() error {
		if reverse {
			for i := len(ordered) - 1; i >= 0; i-- {
				move(scene, ordered[i])
			}
		} else {
			for _, o := range ordered {
				move(scene, o)
			}
		}
		s.surface.Fire(EventObjectModified, ordered...)
		return nil
	})
	s.surface.RequestRender()
}

// Undo steps back one history entry.
func (s *Session) Undo() (bool, error) {
	ok, err := s.history.Undo(s.surface)
	if ok {
		s.resetMerged()
	}
	return ok, err
}

// Redo re-applies the last undone entry.
func (s *Session) Redo() (bool, error) {
	ok, err := s.history.Redo(s.surface)
	if ok {
		s.resetMerged()
	}
	return ok, err
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Snapshot serializes the current scene.
func (s *Session) Snapshot() ([]byte, error) {
	return s.surface.Serialize()
}

// Load replaces the scene with snapshot and starts a fresh history.
func (s *Session) Load(snapshot []byte) error {
	if err := s.history.Load(s.surface, snapshot); err != nil {
		return err
	}
	s.anchor = nil
	s.action = ActionNone
	s.resetMerged()
	s.log.Info("layout loaded", slog.Int("objects", len(s.surface.Objects())))
	return nil
}
