package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/seatmap/internal/model"
)

// LayoutExt is the file extension for saved layouts.
const LayoutExt = ".seatmap"

// LayoutVersion is written into every saved layout.
const LayoutVersion = "1.0.0"

// ErrNotLayout is returned when a file is not a seat map layout.
var ErrNotLayout = errors.New("not a seat map layout")

// LayoutFile is the on-disk form of a layout. The scene is stored in the
// same snapshot format the editor history uses.
type LayoutFile struct {
	Name    string          `json:"name"`
	Version string          `json:"version"`
	SavedAt string          `json:"saved_at"`
	Scene   json.RawMessage `json:"scene"`
}

// SaveLayout writes a scene snapshot to path. An empty name is taken from
// the file name.
func SaveLayout(path, name string, snapshot []byte) error {
	if len(snapshot) == 0 {
		return fmt.Errorf("%w: empty scene snapshot", ErrNotLayout)
	}
	if name == "" {
		name = LayoutName(path)
	}
	lf := LayoutFile{
		Name:    name,
		Version: LayoutVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Scene:   json.RawMessage(snapshot),
	}
	data, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layout: %w", err)
	}
	return nil
}

// SaveScene encodes scene and writes it to path.
func SaveScene(path, name string, scene *model.Scene) error {
	snap, err := model.EncodeScene(scene)
	if err != nil {
		return err
	}
	return SaveLayout(path, name, snap)
}

// LoadLayout reads a layout file. The scene snapshot is validated before it
// is returned, so callers can hand it straight to the editor.
func LoadLayout(path string) (LayoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LayoutFile{}, fmt.Errorf("failed to read layout: %w", err)
	}
	var lf LayoutFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return LayoutFile{}, fmt.Errorf("failed to parse layout %s: %w", filepath.Base(path), err)
	}
	if lf.Version == "" || len(lf.Scene) == 0 {
		return LayoutFile{}, fmt.Errorf("%w: %s", ErrNotLayout, filepath.Base(path))
	}
	if _, err := model.DecodeScene(lf.Scene); err != nil {
		return LayoutFile{}, fmt.Errorf("layout %s: %w", filepath.Base(path), err)
	}
	if lf.Name == "" {
		lf.Name = LayoutName(path)
	}
	return lf, nil
}

// Decode returns the layout's scene.
func (lf LayoutFile) Decode() (*model.Scene, error) {
	return model.DecodeScene(lf.Scene)
}

// LayoutName derives a display name from a layout path.
func LayoutName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EnsureLayoutExt appends the layout extension if path has none.
func EnsureLayoutExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + LayoutExt
	}
	return path
}
