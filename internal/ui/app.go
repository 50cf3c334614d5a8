package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/seatmap/internal/editor"
	"github.com/piwi3910/seatmap/internal/importer"
	"github.com/piwi3910/seatmap/internal/logging"
	"github.com/piwi3910/seatmap/internal/model"
	"github.com/piwi3910/seatmap/internal/project"
	"github.com/piwi3910/seatmap/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app    fyne.App
	window fyne.Window
	config model.AppConfig
	log    *logging.Logger

	surface *editor.MemorySurface
	session *editor.Session
	canvas  *widgets.SceneCanvas
	props   *propertiesPanel

	layoutPath string
	layoutName string

	templates      project.TemplateStore
	customProfiles []model.PriceProfile

	// UI references for dynamic updates
	toolButtons map[editor.ToolMode]*ttwidget.Button
	undoBtn     *ttwidget.Button
	redoBtn     *ttwidget.Button
	aspectCheck *widget.Check
	statusLabel *widget.Label
	recentMenu  *fyne.Menu

	autoSaveStop chan struct{}
}

// NewApp creates the editor with an empty layout sized from cfg.
func NewApp(application fyne.App, window fyne.Window, cfg model.AppConfig, log *logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	a := &App{
		app:        application,
		window:     window,
		config:     cfg,
		log:        log.WithComponent("ui"),
		layoutName: "Untitled",
	}

	a.surface = editor.NewMemorySurface(cfg.NewScene())
	a.session = editor.NewSession(a.surface, editor.OptionsFromConfig(cfg), log)
	a.canvas = widgets.NewSceneCanvas(a.session)
	a.canvas.OnChanged = a.refreshChrome
	a.canvas.OnEditLabel = a.showEditLabelDialog
	a.canvas.ShowSeatNumbers = cfg.ShowSeatLabel
	a.surface.SetRenderFunc(a.canvas.Refresh)
	a.props = newPropertiesPanel(a)
	a.session.OnPropertiesChanged(a.props.update)

	var err error
	if a.templates, err = project.LoadTemplates(project.DefaultTemplatePath()); err != nil {
		a.log.Warn("failed to load templates", slog.String("error", err.Error()))
		a.templates = project.NewTemplateStore()
	}
	if a.customProfiles, err = project.LoadCustomProfiles(project.DefaultProfilesPath()); err != nil {
		a.log.Warn("failed to load price profiles", slog.String("error", err.Error()))
	}
	return a
}

// Session returns the active editing session.
func (a *App) Session() *editor.Session { return a.session }

// Close stops auto-save and detaches the session.
func (a *App) Close() {
	a.stopAutoSave()
	a.session.Close()
}

// SetupMenus creates the native menu bar and keyboard shortcuts.
func (a *App) SetupMenus() {
	a.recentMenu = fyne.NewMenu("Open Recent")
	a.refreshRecentMenu()
	openRecent := fyne.NewMenuItem("Open Recent", nil)
	openRecent.ChildMenu = a.recentMenu

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Layout", a.newLayout),
		fyne.NewMenuItem("New from Template...", a.showNewFromTemplateDialog),
		fyne.NewMenuItem("Open Layout...", a.openLayout),
		openRecent,
		fyne.NewMenuItem("Save Layout", a.saveLayout),
		fyne.NewMenuItem("Save Layout As...", a.saveLayoutAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Seats from CSV...", func() { a.importFile("csv") }),
		fyne.NewMenuItem("Import Seats from Excel...", func() { a.importFile("xlsx") }),
		fyne.NewMenuItem("Import Drawing from DXF...", func() { a.importFile("dxf") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Layout PDF...", a.exportLayoutPDF),
		fyne.NewMenuItem("Export Seat Tags...", a.exportSeatTags),
		fyne.NewMenuItem("Export Seat List...", a.exportSeatList),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Cut", a.cut),
		fyne.NewMenuItem("Copy", a.copy),
		fyne.NewMenuItem("Paste", a.paste),
		fyne.NewMenuItem("Delete", a.deleteSelection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Select All", func() { a.session.SelectAll(); a.refreshChrome() }),
		fyne.NewMenuItem("Bring to Front", a.session.BringToFront),
		fyne.NewMenuItem("Send to Back", a.session.SendToBack),
	)

	layoutMenu := fyne.NewMenu("Layout",
		fyne.NewMenuItem("Canvas Settings...", a.showCanvasSettingsDialog),
		fyne.NewMenuItem("Apply Price Profile...", a.showApplyPriceProfileDialog),
		fyne.NewMenuItem("Layout Summary...", a.showSummaryDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save as Template...", a.showSaveTemplateDialog),
		fyne.NewMenuItem("Manage Templates...", a.showTemplateManager),
	)

	settingsMenu := fyne.NewMenu("Settings",
		fyne.NewMenuItem("Preferences...", a.showSettingsDialog),
		fyne.NewMenuItem("Price Profiles...", a.showProfileManager),
		fyne.NewMenuItem("Import / Export Data...", a.showImportExportDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, layoutMenu, settingsMenu, helpMenu))
	a.setupShortcuts()
}

func (a *App) setupShortcuts() {
	c := a.window.Canvas()
	handlers := a.shortcutHandlers()
	for action, key := range shortcutKeys {
		fn := handlers[action]
		c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault},
			func(fyne.Shortcut) { fn() })
	}

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			a.deleteSelection()
		case fyne.KeyEscape:
			a.session.FinishEditing()
			a.session.Deselect()
			a.setTool(editor.ToolSelect)
		case fyne.KeyLeft:
			a.session.MoveSelection(-1, 0)
		case fyne.KeyRight:
			a.session.MoveSelection(1, 0)
		case fyne.KeyUp:
			a.session.MoveSelection(0, -1)
		case fyne.KeyDown:
			a.session.MoveSelection(0, 1)
		default:
			return
		}
		a.refreshChrome()
	})
}

func (a *App) shortcutHandlers() map[shortcutAction]func() {
	return map[shortcutAction]func(){
		actionUndo:      a.undo,
		actionRedo:      a.redo,
		actionCopy:      a.copy,
		actionCut:       a.cut,
		actionPaste:     a.paste,
		actionSelectAll: func() { a.session.SelectAll(); a.refreshChrome() },
		actionSave:      a.saveLayout,
		actionOpen:      a.openLayout,
		actionNew:       a.newLayout,
	}
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About Seatmap",
		"Seatmap — Venue Seat Layout Editor\n\n"+
			"Lay out seats, zones and labels, price them by category\n"+
			"and export printable plans, seat tags and seat lists.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.statusLabel = widget.NewLabel("")
	a.refreshChrome()

	split := container.NewHSplit(
		container.NewBorder(nil, nil, nil, nil, a.canvas),
		a.props.object(),
	)
	split.SetOffset(0.75)

	a.startAutoSave()
	return container.NewBorder(
		a.buildToolbar(),
		container.NewHBox(a.statusLabel),
		nil, nil,
		split,
	)
}

// ─── Toolbar ───────────────────────────────────────────────

type toolIcon struct {
	mode    editor.ToolMode
	icon    fyne.Resource
	tooltip string
}

func toolIcons() []toolIcon {
	return []toolIcon{
		{editor.ToolSelect, theme.NavigateBackIcon(), "Select and move (Esc)"},
		{editor.ToolOneSeat, theme.RadioButtonCheckedIcon(), "Place one seat"},
		{editor.ToolMultipleSeat, theme.GridIcon(), "Drag to place a seat grid"},
		{editor.ToolShapeSquare, theme.CheckButtonIcon(), "Place a zone"},
		{editor.ToolText, theme.DocumentCreateIcon(), "Place a label"},
	}
}

func (a *App) buildToolbar() fyne.CanvasObject {
	a.toolButtons = map[editor.ToolMode]*ttwidget.Button{}
	tools := container.NewHBox()
	for _, t := range toolIcons() {
		mode := t.mode
		btn := newIconButtonWithTooltip(t.icon, t.tooltip, func() { a.setTool(mode) })
		a.toolButtons[mode] = btn
		tools.Add(btn)
	}

	a.undoBtn = newActionButton(theme.ContentUndoIcon(), "Undo", actionUndo, a.undo)
	a.redoBtn = newActionButton(theme.ContentRedoIcon(), "Redo", actionRedo, a.redo)

	a.aspectCheck = widget.NewCheck("Lock aspect", func(on bool) {
		a.session.SetAspectLock(on)
	})
	a.aspectCheck.SetChecked(a.session.AspectLock())

	a.refreshChrome()
	return container.NewHBox(
		tools,
		widget.NewSeparator(),
		newActionButton(theme.ContentCutIcon(), "Cut", actionCut, a.cut),
		newActionButton(theme.ContentCopyIcon(), "Copy", actionCopy, a.copy),
		newActionButton(theme.ContentPasteIcon(), "Paste at last click", actionPaste, a.paste),
		newIconButtonWithTooltip(theme.DeleteIcon(), "Delete selection", a.deleteSelection),
		widget.NewSeparator(),
		a.undoBtn,
		a.redoBtn,
		widget.NewSeparator(),
		a.aspectCheck,
		layout.NewSpacer(),
		newIconButtonWithTooltip(theme.SettingsIcon(), "Canvas settings", a.showCanvasSettingsDialog),
	)
}

func (a *App) setTool(mode editor.ToolMode) {
	a.session.FinishEditing()
	a.session.SetToolMode(mode)
	a.refreshChrome()
}

// refreshChrome updates toolbar state and the status bar after an edit.
func (a *App) refreshChrome() {
	for mode, btn := range a.toolButtons {
		if mode == a.session.ToolMode() {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
	if a.undoBtn != nil {
		setEnabled(a.undoBtn, a.session.CanUndo())
		setEnabled(a.redoBtn, a.session.CanRedo())
	}
	if a.statusLabel != nil {
		a.statusLabel.SetText(a.statusText())
	}
}

func setEnabled(w fyne.Disableable, on bool) {
	if on {
		w.Enable()
	} else {
		w.Disable()
	}
}

func (a *App) statusText() string {
	st := a.session.Scene().Stats()
	return fmt.Sprintf("%s  |  tool: %s  |  %d seats, %d zones, %d labels  |  %d selected  |  value %.2f",
		a.layoutName, a.session.ToolMode(), st.Seats, st.Zones, st.Labels,
		len(a.session.Selected()), st.Revenue)
}

// ─── Edit Actions ──────────────────────────────────────────

func (a *App) undo() {
	if _, err := a.session.Undo(); err != nil {
		a.showStateError(err)
	}
	a.refreshChrome()
}

func (a *App) redo() {
	if _, err := a.session.Redo(); err != nil {
		a.showStateError(err)
	}
	a.refreshChrome()
}

func (a *App) showStateError(err error) {
	a.log.Error("history step failed", slog.String("error", err.Error()))
	var desync *editor.StateDesyncError
	if errors.As(err, &desync) {
		dialog.ShowError(fmt.Errorf("the editor state could not be restored; save your work and reload the layout: %w", err), a.window)
		return
	}
	dialog.ShowError(err, a.window)
}

func (a *App) copy() {
	a.session.Copy()
	a.refreshChrome()
}

func (a *App) cut() {
	a.session.Cut()
	a.refreshChrome()
}

func (a *App) paste() {
	if len(a.session.Paste()) == 0 && a.session.Clipboard().Len() > 0 {
		if _, ok := a.session.Anchor(); !ok {
			dialog.ShowInformation("Paste", "Click on the canvas to choose where to paste.", a.window)
		}
	}
	a.refreshChrome()
}

func (a *App) deleteSelection() {
	a.session.DeleteSelection()
	a.refreshChrome()
}

func (a *App) showEditLabelDialog(o *model.Object) {
	entry := widget.NewMultiLineEntry()
	entry.SetText(o.Label.Text)
	id := o.ID

	d := dialog.NewForm("Edit Label", "Apply", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Text", entry)},
		func(ok bool) {
			if !ok {
				return
			}
			a.session.SelectByID(id)
			if err := a.session.UpdateObject(editor.Properties{Text: editor.Ptr(entry.Text)}); err != nil {
				dialog.ShowError(err, a.window)
			}
			a.session.FinishEditing()
			a.refreshChrome()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(400, 200))
	d.Show()
}

// ─── Layout Files ──────────────────────────────────────────

func (a *App) newLayout() {
	if err := a.loadScene(a.config.NewScene(), "", "Untitled"); err != nil {
		dialog.ShowError(err, a.window)
	}
}

// loadScene replaces the edited scene and starts a fresh history.
func (a *App) loadScene(scene *model.Scene, path, name string) error {
	snap, err := model.EncodeScene(scene)
	if err != nil {
		return err
	}
	if err := a.session.Load(snap); err != nil {
		return err
	}
	a.layoutPath = path
	a.layoutName = name
	a.window.SetTitle("Seatmap — " + name)
	a.canvas.Refresh()
	a.refreshChrome()
	return nil
}

func (a *App) openLayout() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		if err := a.openLayoutPath(reader.URI().Path()); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.Show()
}

// openLayoutPath loads a layout file into the editor.
func (a *App) openLayoutPath(path string) error {
	lf, err := project.LoadLayout(path)
	if err != nil {
		return err
	}
	if err := a.session.Load(lf.Scene); err != nil {
		return err
	}
	a.layoutPath = path
	a.layoutName = lf.Name
	a.window.SetTitle("Seatmap — " + lf.Name)
	a.rememberLayout(path)
	a.refreshChrome()
	return nil
}

func (a *App) saveLayout() {
	if a.layoutPath == "" {
		a.saveLayoutAs()
		return
	}
	if err := a.saveLayoutPath(a.layoutPath); err != nil {
		dialog.ShowError(err, a.window)
	}
}

func (a *App) saveLayoutAs() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := a.saveLayoutPath(project.EnsureLayoutExt(writer.URI().Path())); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName(a.layoutName + project.LayoutExt)
	d.Show()
}

// saveLayoutPath writes the current scene to path.
func (a *App) saveLayoutPath(path string) error {
	a.session.FinishEditing()
	snap, err := a.session.Snapshot()
	if err != nil {
		return err
	}
	name := a.layoutName
	if a.layoutPath != path || name == "" || name == "Untitled" {
		name = project.LayoutName(path)
	}
	if err := project.SaveLayout(path, name, snap); err != nil {
		return err
	}
	a.layoutPath = path
	a.layoutName = name
	a.window.SetTitle("Seatmap — " + name)
	a.rememberLayout(path)
	a.log.WithLayout(name).Info("layout saved", slog.String("path", path))
	a.refreshChrome()
	return nil
}

func (a *App) rememberLayout(path string) {
	a.config.AddRecentLayout(path)
	if err := a.saveConfig(); err != nil {
		a.log.Warn("failed to save recent layouts", slog.String("error", err.Error()))
	}
	a.refreshRecentMenu()
}

func (a *App) refreshRecentMenu() {
	if a.recentMenu == nil {
		return
	}
	a.recentMenu.Items = nil
	for _, p := range a.config.RecentLayouts {
		path := p
		a.recentMenu.Items = append(a.recentMenu.Items, fyne.NewMenuItem(path, func() {
			if err := a.openLayoutPath(path); err != nil {
				dialog.ShowError(err, a.window)
			}
		}))
	}
	if len(a.recentMenu.Items) == 0 {
		item := fyne.NewMenuItem("(none)", nil)
		item.Disabled = true
		a.recentMenu.Items = append(a.recentMenu.Items, item)
	}
	a.recentMenu.Refresh()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importFile(kind string) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(a.importPath(kind, reader.URI().Path()))
	}, a.window)
}

// importPath runs the importer for kind and adds what it produced.
func (a *App) importPath(kind, path string) importer.ImportResult {
	opts := importer.DefaultOptions()
	opts.SeatRadius = a.config.SeatRadius
	opts.Pitch = a.config.GridPitch

	var result importer.ImportResult
	switch kind {
	case "csv":
		result = importer.ImportCSV(path, opts)
	case "xlsx":
		result = importer.ImportExcel(path, opts)
	case "dxf":
		result = importer.ImportDXF(path, importer.DefaultDXFOptions())
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("unsupported import type %q", kind))
	}

	if len(result.Objects) > 0 {
		a.session.AddObjects(result.Objects...)
	}
	a.log.Info("import finished",
		slog.String("path", path),
		slog.Int("objects", len(result.Objects)),
		slog.Int("errors", len(result.Errors)),
		slog.Int("warnings", len(result.Warnings)))
	a.refreshChrome()
	return result
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.log.Warn("import warning", slog.String("warning", w))
	}

	if len(result.Objects) > 0 {
		msg := fmt.Sprintf("Successfully imported %d objects.", len(result.Objects))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		if len(result.Warnings) > 0 {
			msg += "\n\nWarnings:\n" + strings.Join(result.Warnings, "\n")
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

// ─── Auto-Save ─────────────────────────────────────────────

// startAutoSave saves the open layout every AutoSaveInterval minutes.
// Layouts that were never saved to a file are skipped.
func (a *App) startAutoSave() {
	a.stopAutoSave()
	if a.config.AutoSaveInterval <= 0 {
		return
	}
	stop := make(chan struct{})
	a.autoSaveStop = stop
	ticker := time.NewTicker(time.Duration(a.config.AutoSaveInterval) * time.Minute)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fyne.Do(a.autoSave)
			}
		}
	}()
}

func (a *App) stopAutoSave() {
	if a.autoSaveStop != nil {
		close(a.autoSaveStop)
		a.autoSaveStop = nil
	}
}

func (a *App) autoSave() {
	if a.layoutPath == "" {
		return
	}
	if err := a.saveLayoutPath(a.layoutPath); err != nil {
		a.log.Error("auto-save failed", slog.String("path", a.layoutPath), slog.String("error", err.Error()))
	}
}
