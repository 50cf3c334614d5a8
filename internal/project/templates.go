package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/seatmap/internal/model"
)

// LayoutTemplate is a reusable venue layout, for example a standard hall
// arrangement that new events start from.
type LayoutTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
	Scene       json.RawMessage `json:"scene"`
}

// NewLayoutTemplate captures scene as a template. Seat statuses are reset to
// available so sales from the source event do not carry over.
func NewLayoutTemplate(name, description string, scene *model.Scene) (LayoutTemplate, error) {
	cp := scene.Clone()
	for _, o := range cp.Seats() {
		o.Seat.Status = model.StatusAvailable
	}
	snap, err := model.EncodeScene(cp)
	if err != nil {
		return LayoutTemplate{}, fmt.Errorf("failed to capture template scene: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	return LayoutTemplate{
		ID:          model.NewID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Scene:       snap,
	}, nil
}

// ToScene creates a new scene from this template. Objects get fresh IDs so
// they are independent of the template.
func (t LayoutTemplate) ToScene() (*model.Scene, error) {
	scene, err := model.DecodeScene(t.Scene)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", t.Name, err)
	}
	for _, o := range scene.Objects {
		o.ID = model.NewID()
	}
	return scene, nil
}

// TemplateStore holds a collection of layout templates.
type TemplateStore struct {
	Templates []LayoutTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []LayoutTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t LayoutTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *LayoutTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// DefaultTemplatePath returns the default file path for the templates store.
// This is located at ~/.seatmap/templates.json.
func DefaultTemplatePath() string {
	return filepath.Join(DefaultConfigDir(), "templates.json")
}

// SaveTemplates writes the template store to a JSON file.
func SaveTemplates(path string, store TemplateStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadTemplates reads a template store from a JSON file.
// If the file does not exist, returns an empty store.
func LoadTemplates(path string) (TemplateStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTemplateStore(), nil
		}
		return TemplateStore{}, err
	}
	var store TemplateStore
	if err := json.Unmarshal(data, &store); err != nil {
		return TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []LayoutTemplate{}
	}
	return store, nil
}
