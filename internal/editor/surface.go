package editor

import (
	"github.com/piwi3910/seatmap/internal/model"
)

// Surface is the rendering and hit-testing canvas the editor drives. The
// editor never touches a scene except through a Surface.
type Surface interface {
	// Scene returns the live scene. Callers must not retain objects across a Deserialize.
	Scene() *model.Scene
	Size() (width, height float64)

	Add(objs ...*model.Object)
	Remove(objs ...*model.Object)
	Objects(kinds ...model.Kind) []*model.Object
	ObjectAt(p model.Point) *model.Object

	ActiveObjects() []*model.Object
	SetActiveObjects(objs ...*model.Object)
	DiscardActiveObject()

	On(name EventName, h Handler) (off func())
	Fire(name EventName, objs ...*model.Object)

	// Serialize captures the scene as a snapshot.
	Serialize() ([]byte, error)
	// Deserialize replaces the scene with a snapshot. It returns once the
	// scene is fully loaded; on error the previous scene is kept.
	Deserialize(snapshot []byte) error

	RequestRender()
}

// MemorySurface is a Surface backed by an in-memory scene. Rendering is
// delegated to an optional callback.
type MemorySurface struct {
	scene     *model.Scene
	selection Selection
	bus       eventBus
	onRender  func()
	renders   int
}

// NewMemorySurface wraps scene. A nil scene gets an empty default canvas.
func NewMemorySurface(scene *model.Scene) *MemorySurface {
	if scene == nil {
		scene = model.NewScene(model.DefaultCanvasWidth, model.DefaultCanvasHeight)
	}
	return &MemorySurface{scene: scene}
}

// SetRenderFunc sets the callback invoked by RequestRender.
func (m *MemorySurface) SetRenderFunc(fn func()) {
	m.onRender = fn
}

// Renders returns how many renders were requested.
func (m *MemorySurface) Renders() int { return m.renders }

func (m *MemorySurface) Scene() *model.Scene { return m.scene }

func (m *MemorySurface) Size() (float64, float64) {
	return m.scene.Width, m.scene.Height
}

func (m *MemorySurface) Add(objs ...*model.Object) {
	for _, o := range objs {
		m.scene.Add(o)
		m.bus.fire(Event{Name: EventObjectAdded, Objects: []*model.Object{o}})
	}
}

func (m *MemorySurface) Remove(objs ...*model.Object) {
	for _, o := range objs {
		if !m.scene.Remove(o.ID) {
			continue
		}
		wasSelected := m.selection.Contains(o.ID)
		m.selection.Prune(m.scene)
		m.bus.fire(Event{Name: EventObjectRemoved, Objects: []*model.Object{o}})
		if wasSelected && m.selection.Empty() {
			m.bus.fire(Event{Name: EventSelectionCleared})
		}
	}
}

func (m *MemorySurface) Objects(kinds ...model.Kind) []*model.Object {
	return m.scene.Filter(kinds...)
}

// ObjectAt returns the topmost object under p, or nil.
func (m *MemorySurface) ObjectAt(p model.Point) *model.Object {
	for i := len(m.scene.Objects) - 1; i >= 0; i-- {
		if o := m.scene.Objects[i]; o.ContainsPoint(p) {
			return o
		}
	}
	return nil
}

func (m *MemorySurface) ActiveObjects() []*model.Object {
	return m.selection.Resolve(m.scene)
}

// SetActiveObjects replaces the selection. Objects not in the scene are ignored.
func (m *MemorySurface) SetActiveObjects(objs ...*model.Object) {
	had := !m.selection.Empty()
	ids := make([]string, 0, len(objs))
	for _, o := range objs {
		if m.scene.Find(o.ID) != nil {
			ids = append(ids, o.ID)
		}
	}
	if len(ids) == 0 {
		m.DiscardActiveObject()
		return
	}
	m.selection.Set(ids...)
	name := EventSelectionCreated
	if had {
		name = EventSelectionUpdated
	}
	m.bus.fire(Event{Name: name, Objects: m.ActiveObjects()})
}

func (m *MemorySurface) DiscardActiveObject() {
	if m.selection.Empty() {
		return
	}
	m.selection.Clear()
	m.bus.fire(Event{Name: EventSelectionCleared})
}

func (m *MemorySurface) On(name EventName, h Handler) func() {
	return m.bus.on(name, h)
}

func (m *MemorySurface) Fire(name EventName, objs ...*model.Object) {
	m.bus.fire(Event{Name: name, Objects: objs})
}

func (m *MemorySurface) Serialize() ([]byte, error) {
	return model.EncodeScene(m.scene)
}

// Deserialize decodes the snapshot before touching the live scene, so a
// corrupt snapshot leaves everything as it was. Loaded objects are announced
// with object:added like any other insertion.
func (m *MemorySurface) Deserialize(snapshot []byte) error {
	scene, err := model.DecodeScene(snapshot)
	if err != nil {
		return err
	}
	m.DiscardActiveObject()
	m.scene = scene
	for _, o := range scene.Objects {
		m.bus.fire(Event{Name: EventObjectAdded, Objects: []*model.Object{o}})
	}
	m.RequestRender()
	return nil
}

func (m *MemorySurface) RequestRender() {
	m.renders++
	if m.onRender != nil {
		m.onRender()
	}
}
