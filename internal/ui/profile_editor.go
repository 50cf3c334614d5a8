package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seatmap/internal/model"
	"github.com/piwi3910/seatmap/internal/project"
)

// showProfileManager opens the price profile manager where users can view,
// create, edit, duplicate, delete, import, export and apply price profiles.
func (a *App) showProfileManager() {
	w := a.app.NewWindow("Price Profile Manager")
	w.Resize(fyne.NewSize(700, 500))

	selectedIdx := -1
	profiles := a.allProfiles()
	detailContainer := container.NewVBox(
		widget.NewLabel("Select a profile to view details."),
	)

	var listWidget *widget.List
	listWidget = widget.NewList(
		func() int {
			return len(profiles)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.DocumentIcon()),
				widget.NewLabel("Profile Name"),
				layout.NewSpacer(),
				widget.NewLabel("(built-in)"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			box := obj.(*fyne.Container)
			nameLabel := box.Objects[1].(*widget.Label)
			tagLabel := box.Objects[3].(*widget.Label)
			p := profiles[id]
			nameLabel.SetText(p.Name)
			if p.IsBuiltIn {
				tagLabel.SetText("(built-in)")
			} else {
				tagLabel.SetText("(custom)")
			}
		},
	)

	reload := func() {
		profiles = a.allProfiles()
		selectedIdx = -1
		listWidget.UnselectAll()
		listWidget.Refresh()
		detailContainer.RemoveAll()
		detailContainer.Add(widget.NewLabel("Select a profile to view details."))
		detailContainer.Refresh()
	}

	listWidget.OnSelected = func(id widget.ListItemID) {
		selectedIdx = id
		a.showProfileDetail(detailContainer, profiles[id], w, reload)
	}

	selected := func(action string) (model.PriceProfile, bool) {
		if selectedIdx < 0 || selectedIdx >= len(profiles) {
			dialog.ShowInformation("No Selection", "Select a profile to "+action+".", w)
			return model.PriceProfile{}, false
		}
		return profiles[selectedIdx], true
	}

	newBtn := widget.NewButtonWithIcon("New", theme.ContentAddIcon(), func() {
		a.showNameProfileDialog("New Price Profile", "", w, func(name string) error {
			return a.addCustomProfile(model.PriceProfile{
				Name: name,
				Categories: []model.CategoryPrice{
					{Category: model.DefaultSeatCategory, Price: a.config.SeatPrice},
				},
			})
		}, reload)
	})

	duplicateBtn := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), func() {
		src, ok := selected("duplicate")
		if !ok {
			return
		}
		a.showNameProfileDialog("Duplicate Profile", src.Name+" (Copy)", w, func(name string) error {
			dup := src
			dup.Name = name
			dup.IsBuiltIn = false
			dup.Categories = append([]model.CategoryPrice(nil), src.Categories...)
			return a.addCustomProfile(dup)
		}, reload)
	})

	importBtn := widget.NewButtonWithIcon("Import", theme.FolderOpenIcon(), func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()
			p, err := project.ImportProfile(reader.URI().Path())
			if err == nil {
				err = a.addCustomProfile(p)
			}
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			reload()
		}, w)
	})

	exportBtn := widget.NewButtonWithIcon("Export", theme.DocumentSaveIcon(), func() {
		p, ok := selected("export")
		if !ok {
			return
		}
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			if err := project.ExportProfile(writer.URI().Path(), p); err != nil {
				dialog.ShowError(err, w)
			}
		}, w)
		d.SetFileName(p.Name + ".json")
		d.Show()
	})

	deleteBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		p, ok := selected("delete")
		if !ok {
			return
		}
		if p.IsBuiltIn {
			dialog.ShowInformation("Cannot Delete", "Built-in profiles cannot be deleted.", w)
			return
		}
		dialog.ShowConfirm("Delete Profile",
			fmt.Sprintf("Delete custom profile %q?", p.Name),
			func(ok bool) {
				if !ok {
					return
				}
				if err := a.removeCustomProfile(p.Name); err != nil {
					dialog.ShowError(err, w)
					return
				}
				reload()
			},
			w,
		)
	})

	applyBtn := widget.NewButtonWithIcon("Apply to Layout", theme.ConfirmIcon(), func() {
		p, ok := selected("apply")
		if !ok {
			return
		}
		a.applyPriceProfile(p, w)
	})

	toolbar := container.NewVBox(
		container.NewHBox(newBtn, duplicateBtn, deleteBtn),
		container.NewHBox(importBtn, exportBtn, applyBtn),
	)

	listPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profiles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		toolbar,
		nil, nil,
		listWidget,
	)

	detailPanel := container.NewBorder(
		widget.NewLabelWithStyle("Profile Details", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil,
		container.NewVScroll(detailContainer),
	)

	split := container.NewHSplit(listPanel, detailPanel)
	split.SetOffset(0.4)

	w.SetContent(split)
	w.Show()
}

// showProfileDetail populates the detail pane with the profile's categories.
func (a *App) showProfileDetail(c *fyne.Container, p model.PriceProfile, w fyne.Window, onChanged func()) {
	c.RemoveAll()

	grid := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("Category", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Price", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Color", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, cp := range p.Categories {
		grid.Add(widget.NewLabel(cp.Category))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.2f", cp.Price)))
		grid.Add(widget.NewLabel(cp.Color))
	}

	if p.IsBuiltIn {
		c.Add(widget.NewLabel("Built-in profiles are read-only. Duplicate to customize."))
	} else {
		c.Add(widget.NewButtonWithIcon("Edit Profile", theme.DocumentCreateIcon(), func() {
			a.showEditProfileDialog(p, w, onChanged)
		}))
	}
	c.Add(widget.NewLabelWithStyle(p.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	c.Add(widget.NewSeparator())
	c.Add(grid)
	c.Refresh()
}

// showNameProfileDialog asks for a profile name and hands it to create.
func (a *App) showNameProfileDialog(title, initial string, w fyne.Window, create func(string) error, onCreated func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(initial)
	nameEntry.SetPlaceHolder("My Price Profile")

	form := dialog.NewForm(title, "Create", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Profile Name", nameEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			name := strings.TrimSpace(nameEntry.Text)
			if name == "" {
				dialog.ShowError(fmt.Errorf("profile name cannot be empty"), w)
				return
			}
			if err := create(name); err != nil {
				dialog.ShowError(err, w)
				return
			}
			onCreated()
		},
		w,
	)
	form.Resize(fyne.NewSize(400, 150))
	form.Show()
}

// showEditProfileDialog edits a custom profile. Categories are entered one
// per line as "category, price[, color]".
func (a *App) showEditProfileDialog(p model.PriceProfile, w fyne.Window, onSaved func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetText(p.Name)

	catEntry := widget.NewMultiLineEntry()
	catEntry.SetText(formatCategoryLines(p.Categories))
	catEntry.SetMinRowsVisible(8)

	form := dialog.NewForm("Edit Price Profile", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItemWithHint("Categories", catEntry, "one per line: category, price, color"),
		},
		func(ok bool) {
			if !ok {
				return
			}
			cats, err := parseCategoryLines(catEntry.Text)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			updated := model.PriceProfile{Name: strings.TrimSpace(nameEntry.Text), Categories: cats}
			if err := a.replaceCustomProfile(p.Name, updated); err != nil {
				dialog.ShowError(err, w)
				return
			}
			onSaved()
		},
		w,
	)
	form.Resize(fyne.NewSize(500, 400))
	form.Show()
}

// showApplyPriceProfileDialog picks a profile and reprices the open layout.
func (a *App) showApplyPriceProfileDialog() {
	profiles := a.allProfiles()
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}
	sel := widget.NewSelect(names, nil)
	if len(names) > 0 {
		sel.SetSelected(names[0])
	}

	d := dialog.NewForm("Apply Price Profile", "Apply", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Profile", sel)},
		func(ok bool) {
			if !ok || sel.SelectedIndex() < 0 {
				return
			}
			a.applyPriceProfile(profiles[sel.SelectedIndex()], a.window)
		},
		a.window,
	)
	d.Resize(fyne.NewSize(400, 150))
	d.Show()
}

func (a *App) applyPriceProfile(p model.PriceProfile, w fyne.Window) {
	n := a.session.ApplyPriceProfile(p)
	a.refreshChrome()
	dialog.ShowInformation("Price Profile Applied",
		fmt.Sprintf("%d seats repriced with %q.", n, p.Name), w)
}

// ─── Profile Store ─────────────────────────────────────────

func (a *App) allProfiles() []model.PriceProfile {
	return project.AllProfiles(a.customProfiles)
}

func (a *App) profileNameTaken(name, except string) bool {
	for _, p := range a.allProfiles() {
		if strings.EqualFold(p.Name, name) && !strings.EqualFold(p.Name, except) {
			return true
		}
	}
	return false
}

func (a *App) addCustomProfile(p model.PriceProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid price profile: %w", err)
	}
	if a.profileNameTaken(p.Name, "") {
		return fmt.Errorf("a profile named %q already exists", p.Name)
	}
	p.IsBuiltIn = false
	a.customProfiles = append(a.customProfiles, p)
	return a.saveCustomProfiles()
}

func (a *App) replaceCustomProfile(oldName string, p model.PriceProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid price profile: %w", err)
	}
	if a.profileNameTaken(p.Name, oldName) {
		return fmt.Errorf("a profile named %q already exists", p.Name)
	}
	for i := range a.customProfiles {
		if a.customProfiles[i].Name == oldName {
			a.customProfiles[i] = p
			return a.saveCustomProfiles()
		}
	}
	return fmt.Errorf("custom profile %q not found", oldName)
}

func (a *App) removeCustomProfile(name string) error {
	for i := range a.customProfiles {
		if a.customProfiles[i].Name == name {
			a.customProfiles = append(a.customProfiles[:i], a.customProfiles[i+1:]...)
			return a.saveCustomProfiles()
		}
	}
	return fmt.Errorf("custom profile %q not found", name)
}

func (a *App) saveCustomProfiles() error {
	return project.SaveCustomProfiles(project.DefaultProfilesPath(), a.customProfiles)
}

func formatCategoryLines(cats []model.CategoryPrice) string {
	lines := make([]string, len(cats))
	for i, c := range cats {
		line := c.Category + ", " + strconv.FormatFloat(c.Price, 'f', -1, 64)
		if c.Color != "" {
			line += ", " + c.Color
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// parseCategoryLines reads "category, price[, color]" lines. Blank lines are skipped.
func parseCategoryLines(text string) ([]model.CategoryPrice, error) {
	var out []model.CategoryPrice
	seen := map[string]bool{}
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 || len(parts) > 3 {
			return nil, fmt.Errorf("line %d: expected \"category, price[, color]\"", i+1)
		}
		cat := strings.TrimSpace(parts[0])
		if cat == "" {
			return nil, fmt.Errorf("line %d: category is empty", i+1)
		}
		key := strings.ToLower(cat)
		if seen[key] {
			return nil, fmt.Errorf("line %d: category %q listed twice", i+1, cat)
		}
		seen[key] = true

		price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("line %d: invalid price %q", i+1, strings.TrimSpace(parts[1]))
		}
		cp := model.CategoryPrice{Category: cat, Price: price}
		if len(parts) == 3 {
			color := strings.TrimSpace(parts[2])
			if _, ok := model.ParseColor(color); !ok {
				return nil, fmt.Errorf("line %d: unknown color %q", i+1, color)
			}
			cp.Color = model.NormalizeColor(color)
		}
		out = append(out, cp)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("a price profile needs at least one category")
	}
	return out, nil
}
