package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seatmap/internal/model"
	"github.com/piwi3910/seatmap/internal/project"
)

// Helper to create a float entry bound to a pointer
func floatEntry(val *float64) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(strconv.FormatFloat(*val, 'f', -1, 64))
	e.OnChanged = func(text string) {
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			*val = v
		}
	}
	return e
}

func intEntry(val *int) *widget.Entry {
	e := widget.NewEntry()
	e.SetText(fmt.Sprintf("%d", *val))
	e.OnChanged = func(text string) {
		if v, err := strconv.Atoi(text); err == nil {
			*val = v
		}
	}
	return e
}

// showSettingsDialog displays the application settings editor. Editor
// defaults apply to layouts opened after saving.
func (a *App) showSettingsDialog() {
	cfg := a.config

	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	logSelect := widget.NewSelect([]string{"debug", "info", "warn", "error"}, func(selected string) {
		cfg.LogLevel = selected
	})
	logSelect.SetSelected(cfg.LogLevel)

	bgEntry := widget.NewEntry()
	bgEntry.SetText(cfg.Background)
	bgEntry.OnChanged = func(text string) { cfg.Background = text }

	categoryEntry := widget.NewEntry()
	categoryEntry.SetText(cfg.SeatCategory)
	categoryEntry.OnChanged = func(text string) { cfg.SeatCategory = text }

	aspectCheck := widget.NewCheck("", func(on bool) { cfg.AspectLock = on })
	aspectCheck.SetChecked(cfg.AspectLock)

	seatLabelCheck := widget.NewCheck("", func(on bool) { cfg.ShowSeatLabel = on })
	seatLabelCheck.SetChecked(cfg.ShowSeatLabel)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Log Level", logSelect),
		widget.NewFormItem("Auto-Save Interval (min, 0=off)", intEntry(&cfg.AutoSaveInterval)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Canvas Width", floatEntry(&cfg.CanvasWidth)),
		widget.NewFormItem("Default Canvas Height", floatEntry(&cfg.CanvasHeight)),
		widget.NewFormItem("Default Background", bgEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Seat Grid Pitch", floatEntry(&cfg.GridPitch)),
		widget.NewFormItem("Seat Radius", floatEntry(&cfg.SeatRadius)),
		widget.NewFormItem("Seat Category", categoryEntry),
		widget.NewFormItem("Seat Price", floatEntry(&cfg.SeatPrice)),
		widget.NewFormItem("Show Seat Numbers", seatLabelCheck),
		widget.NewFormItem("Lock Aspect Ratio", aspectCheck),
		widget.NewFormItem("Undo Depth (0=unlimited, min 2)", intEntry(&cfg.HistoryDepth)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			if err := a.applyConfig(cfg); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 620))
	d.Show()
}

// applyConfig validates and persists cfg and updates the theme.
func (a *App) applyConfig(cfg model.AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.config = cfg
	a.canvas.ShowSeatNumbers = cfg.ShowSeatLabel
	a.canvas.Refresh()
	a.startAutoSave()
	if a.app != nil {
		a.app.Settings().SetTheme(NewSeatmapThemeForConfig(cfg.Theme))
	}
	return a.saveConfig()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config, a.customProfiles, a.templates); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("seatmap-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current settings, price profiles and templates.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					backup, err := a.importBackup(reader.URI().Path())
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, price profiles, templates)\nto a backup file, or import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// importBackup replaces the config, custom profiles and templates with the
// contents of a backup file.
func (a *App) importBackup(path string) (project.BackupData, error) {
	backup, err := project.ImportAllData(path)
	if err != nil {
		return project.BackupData{}, err
	}
	if err := a.applyConfig(backup.Config); err != nil {
		return project.BackupData{}, fmt.Errorf("failed to save imported settings: %w", err)
	}
	a.customProfiles = backup.PriceProfiles
	if err := a.saveCustomProfiles(); err != nil {
		return project.BackupData{}, fmt.Errorf("failed to save imported price profiles: %w", err)
	}
	a.templates = project.TemplateStore{Templates: backup.Templates}
	if err := a.saveTemplates(); err != nil {
		return project.BackupData{}, fmt.Errorf("failed to save imported templates: %w", err)
	}
	a.refreshRecentMenu()
	return backup, nil
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
