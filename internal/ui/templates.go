package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seatmap/internal/project"
)

// ─── Template Manager ──────────────────────────────────────

func (a *App) showTemplateManager() {
	list := container.NewVBox()
	var refreshList func()

	refreshList = func() {
		list.RemoveAll()

		if len(a.templates.Templates) == 0 {
			list.Add(widget.NewLabel("No layout templates saved."))
			return
		}

		header := container.NewGridWithColumns(5,
			widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Description", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("Updated", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
			widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		)
		list.Add(header)
		list.Add(widget.NewSeparator())

		for i := range a.templates.Templates {
			t := a.templates.Templates[i]
			row := container.NewGridWithColumns(5,
				widget.NewLabel(t.Name),
				widget.NewLabel(t.Description),
				widget.NewLabel(t.UpdatedAt),
				widget.NewButtonWithIcon("", theme.DocumentIcon(), func() {
					if err := a.newFromTemplate(t.Name); err != nil {
						dialog.ShowError(err, a.window)
					}
				}),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
					dialog.ShowConfirm("Delete Template", fmt.Sprintf("Delete template %q?", t.Name),
						func(ok bool) {
							if !ok {
								return
							}
							a.templates.Remove(t.ID)
							if err := a.saveTemplates(); err != nil {
								dialog.ShowError(err, a.window)
							}
							refreshList()
						}, a.window)
				}),
			)
			list.Add(row)
		}
	}

	refreshList()

	addBtn := widget.NewButtonWithIcon("Save Current Layout", theme.ContentAddIcon(), func() {
		a.showSaveTemplateDialogThen(refreshList)
	})

	content := container.NewBorder(
		container.NewHBox(addBtn, layout.NewSpacer()),
		nil, nil, nil,
		container.NewVScroll(list),
	)

	d := dialog.NewCustom("Layout Templates", "Close", content, a.window)
	d.Resize(fyne.NewSize(700, 450))
	d.Show()
}

func (a *App) showSaveTemplateDialog() {
	a.showSaveTemplateDialogThen(func() {})
}

func (a *App) showSaveTemplateDialogThen(onDone func()) {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("Template name")
	nameEntry.SetText(a.layoutName)

	descEntry := widget.NewEntry()
	descEntry.SetPlaceHolder("e.g., Main hall, theatre seating")

	form := dialog.NewForm("Save as Template", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Name", nameEntry),
			widget.NewFormItem("Description", descEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			if err := a.saveAsTemplate(nameEntry.Text, descEntry.Text); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			onDone()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 220))
	form.Show()
}

func (a *App) showNewFromTemplateDialog() {
	names := a.templates.Names()
	if len(names) == 0 {
		dialog.ShowInformation("No Templates", "Save a layout as a template first.", a.window)
		return
	}
	sel := widget.NewSelect(names, nil)
	sel.SetSelected(names[0])

	d := dialog.NewForm("New from Template", "Create", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Template", sel)},
		func(ok bool) {
			if !ok {
				return
			}
			if err := a.newFromTemplate(sel.Selected); err != nil {
				dialog.ShowError(err, a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(400, 150))
	d.Show()
}

// saveAsTemplate stores the current scene as a template. An existing
// template with the same name is replaced.
func (a *App) saveAsTemplate(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	a.session.FinishEditing()
	t, err := project.NewLayoutTemplate(name, strings.TrimSpace(description), a.session.Scene())
	if err != nil {
		return err
	}
	if old := a.templates.FindByName(name); old != nil {
		t.CreatedAt = old.CreatedAt
		a.templates.Remove(old.ID)
	}
	a.templates.Add(t)
	if err := a.saveTemplates(); err != nil {
		return fmt.Errorf("failed to save templates: %w", err)
	}
	a.log.Info("template saved", slog.String("template", name))
	return nil
}

// newFromTemplate replaces the open layout with a copy of the named template.
func (a *App) newFromTemplate(name string) error {
	t := a.templates.FindByName(name)
	if t == nil {
		return fmt.Errorf("template %q not found", name)
	}
	scene, err := t.ToScene()
	if err != nil {
		return err
	}
	return a.loadScene(scene, "", name)
}

func (a *App) saveTemplates() error {
	return project.SaveTemplates(project.DefaultTemplatePath(), a.templates)
}
