package ui

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/seatmap/internal/logging"
	"github.com/piwi3910/seatmap/internal/model"
	"github.com/piwi3910/seatmap/internal/project"
)

// newTestApp builds the editor against a throwaway home directory so config,
// profile and template files never touch the real one.
func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(project.ConfigPathEnv, filepath.Join(dir, "config.json"))

	fyneApp := test.NewTempApp(t)
	w := fyneApp.NewWindow("seatmap")
	a := NewApp(fyneApp, w, model.DefaultAppConfig(), logging.Discard())
	w.SetContent(a.Build())
	t.Cleanup(a.Close)
	return a
}

func TestSaveAndOpenLayout(t *testing.T) {
	a := newTestApp(t)
	a.session.CreateSeat(model.Point{X: 100, Y: 100})
	a.session.CreateZone(model.Point{X: 200, Y: 200})

	path := filepath.Join(t.TempDir(), "hall.seatmap")
	require.NoError(t, a.saveLayoutPath(path))
	assert.Equal(t, "hall", a.layoutName)
	assert.Equal(t, []string{path}, a.config.RecentLayouts)

	a.newLayout()
	assert.Empty(t, a.session.Scene().Objects)
	assert.Equal(t, "Untitled", a.layoutName)
	assert.False(t, a.session.CanUndo(), "a new layout starts a fresh history")

	require.NoError(t, a.openLayoutPath(path))
	st := a.session.Scene().Stats()
	assert.Equal(t, 1, st.Seats)
	assert.Equal(t, 1, st.Zones)
	assert.Equal(t, "hall", a.layoutName)
	assert.Equal(t, path, a.layoutPath)
}

func TestOpenLayoutRejectsOtherFiles(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "other.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hello":"world"}`), 0644))

	assert.Error(t, a.openLayoutPath(path))
	assert.Equal(t, "Untitled", a.layoutName)
}

func TestImportCSVIsOneUndoStep(t *testing.T) {
	a := newTestApp(t)
	path := filepath.Join(t.TempDir(), "seats.csv")
	require.NoError(t, os.WriteFile(path, []byte("Seat,Category,Price\nA1,vip,120\nA2,vip,120\n"), 0644))

	result := a.importPath("csv", path)
	require.Empty(t, result.Errors)
	assert.Len(t, a.session.Scene().Seats(), 2)

	_, err := a.session.Undo()
	require.NoError(t, err)
	assert.Empty(t, a.session.Scene().Seats())
}

func TestImportUnknownKind(t *testing.T) {
	a := newTestApp(t)
	result := a.importPath("svg", "whatever.svg")
	assert.NotEmpty(t, result.Errors)
	assert.Empty(t, a.session.Scene().Objects)
}

func TestTemplatesRoundTrip(t *testing.T) {
	a := newTestApp(t)
	seat := a.session.CreateSeat(model.Point{X: 50, Y: 50})
	seat.Seat.Status = model.StatusSold

	require.NoError(t, a.saveAsTemplate("Main Hall", "theatre"))
	require.NoError(t, a.saveAsTemplate("Main Hall", "replaced"))
	require.Len(t, a.templates.Templates, 1)
	assert.Equal(t, "replaced", a.templates.Templates[0].Description)

	stored, err := project.LoadTemplates(project.DefaultTemplatePath())
	require.NoError(t, err)
	assert.Len(t, stored.Templates, 1)

	a.newLayout()
	require.NoError(t, a.newFromTemplate("Main Hall"))
	seats := a.session.Scene().Seats()
	require.Len(t, seats, 1)
	assert.Equal(t, model.StatusAvailable, seats[0].Seat.Status)
	assert.NotEqual(t, seat.ID, seats[0].ID)
	assert.Equal(t, "Main Hall", a.layoutName)

	assert.Error(t, a.saveAsTemplate("  ", ""))
	assert.Error(t, a.newFromTemplate("Missing"))
}

func TestCustomProfiles(t *testing.T) {
	a := newTestApp(t)
	p := model.PriceProfile{
		Name:       "Gala",
		Categories: []model.CategoryPrice{{Category: "vip", Price: 200}},
	}
	require.NoError(t, a.addCustomProfile(p))
	assert.Error(t, a.addCustomProfile(p), "duplicate name")
	assert.Error(t, a.addCustomProfile(model.PriceProfile{Name: "theatre"}), "built-in names are taken")

	p.Categories[0].Price = 250
	require.NoError(t, a.replaceCustomProfile("Gala", p))

	stored, err := project.LoadCustomProfiles(project.DefaultProfilesPath())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 250.0, stored[0].Categories[0].Price)

	require.NoError(t, a.removeCustomProfile("Gala"))
	assert.Error(t, a.removeCustomProfile("Gala"))
	assert.Len(t, a.allProfiles(), len(model.BuiltInPriceProfiles()))
}

func TestApplyPriceProfileFromApp(t *testing.T) {
	a := newTestApp(t)
	seat := a.session.CreateSeat(model.Point{X: 50, Y: 50})
	seat.Seat.Category = "vip"

	n := a.session.ApplyPriceProfile(model.BuiltInPriceProfiles()[0])
	assert.Equal(t, 1, n)
	assert.Equal(t, 120.0, seat.Seat.Price)
	assert.Contains(t, a.statusText(), "value 120.00")
}

func TestApplyConfigValidates(t *testing.T) {
	a := newTestApp(t)
	cfg := a.config
	cfg.GridPitch = 0
	assert.Error(t, a.applyConfig(cfg))
	assert.Equal(t, 60.0, a.config.GridPitch)

	cfg.GridPitch = 45
	require.NoError(t, a.applyConfig(cfg))
	loaded, err := project.LoadAppConfig(project.DefaultConfigPath())
	require.NoError(t, err)
	assert.Equal(t, 45.0, loaded.GridPitch)
}

func TestImportBackupReplacesData(t *testing.T) {
	a := newTestApp(t)
	cfg := model.DefaultAppConfig()
	cfg.SeatPrice = 30
	profiles := []model.PriceProfile{{Name: "Imported", Categories: []model.CategoryPrice{{Category: "standard", Price: 30}}}}

	path := filepath.Join(t.TempDir(), "backup.json")
	require.NoError(t, project.ExportAllData(path, cfg, profiles, project.NewTemplateStore()))

	_, err := a.importBackup(path)
	require.NoError(t, err)
	assert.Equal(t, 30.0, a.config.SeatPrice)
	require.Len(t, a.customProfiles, 1)
	assert.Equal(t, "Imported", a.customProfiles[0].Name)
}

func TestStatusBarFollowsEdits(t *testing.T) {
	a := newTestApp(t)
	a.session.CreateSeat(model.Point{X: 10, Y: 10})
	a.refreshChrome()

	assert.Contains(t, a.statusLabel.Text, "1 seats")
	assert.Contains(t, a.statusLabel.Text, "1 selected")
	assert.False(t, a.undoBtn.Disabled())

	a.undo()
	assert.Contains(t, a.statusLabel.Text, "0 seats")
	assert.False(t, a.redoBtn.Disabled())
}

func TestAutoSaveWritesSavedLayoutOnly(t *testing.T) {
	a := newTestApp(t)
	a.session.CreateSeat(model.Point{X: 10, Y: 10})
	a.autoSave()
	assert.Empty(t, a.config.RecentLayouts, "an unsaved layout has nowhere to go")

	path := filepath.Join(t.TempDir(), "auto.seatmap")
	require.NoError(t, a.saveLayoutPath(path))
	a.session.CreateSeat(model.Point{X: 60, Y: 10})
	a.autoSave()

	lf, err := project.LoadLayout(path)
	require.NoError(t, err)
	scene, err := lf.Decode()
	require.NoError(t, err)
	assert.Len(t, scene.Seats(), 2)
}

func TestApplyConfigTogglesSeatNumbers(t *testing.T) {
	a := newTestApp(t)
	assert.True(t, a.canvas.ShowSeatNumbers)

	cfg := a.config
	cfg.ShowSeatLabel = false
	cfg.AutoSaveInterval = 5
	require.NoError(t, a.applyConfig(cfg))
	assert.False(t, a.canvas.ShowSeatNumbers)
	assert.NotNil(t, a.autoSaveStop)

	a.stopAutoSave()
	assert.Nil(t, a.autoSaveStop)
}

func TestEveryShortcutHasAHandler(t *testing.T) {
	a := newTestApp(t)
	handlers := a.shortcutHandlers()
	for action := range shortcutKeys {
		assert.NotNil(t, handlers[action], "no handler for %s", action)
	}
	assert.Len(t, handlers, len(shortcutKeys))
	assert.Contains(t, a.undoBtn.ToolTip(), shortcutText(actionUndo))
}
