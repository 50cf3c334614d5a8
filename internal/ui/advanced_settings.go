package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seatmap/internal/model"
)

// showCanvasSettingsDialog edits the size and background of the open layout.
// Objects that would fall outside a smaller canvas are pulled back inside.
func (a *App) showCanvasSettingsDialog() {
	scene := a.session.Scene()
	width, height := scene.Width, scene.Height

	bgEntry := widget.NewEntry()
	bgEntry.SetText(scene.Background)
	bgEntry.SetPlaceHolder(model.DefaultBackground)

	widthEntry := floatEntry(&width)
	heightEntry := floatEntry(&height)
	sizeSection := widget.NewCard("Canvas Size", "In layout units",
		container.NewGridWithColumns(2,
			widget.NewLabel("Width"), widthEntry,
			widget.NewLabel("Height"), heightEntry,
		))

	presets := widget.NewSelect([]string{"800 x 600", "1200 x 800", "1600 x 1000", "2400 x 1600"}, nil)
	presets.PlaceHolder = "Presets"
	presets.OnChanged = func(s string) {
		var w, h float64
		if _, err := fmt.Sscanf(s, "%g x %g", &w, &h); err != nil {
			return
		}
		widthEntry.SetText(fmt.Sprintf("%g", w))
		heightEntry.SetText(fmt.Sprintf("%g", h))
	}

	bgSection := widget.NewCard("Background", "#RGB, #RRGGBB or transparent",
		container.NewGridWithColumns(2, widget.NewLabel("Color"), bgEntry))

	st := scene.Stats()
	info := widget.NewLabel(fmt.Sprintf("%d objects on the canvas.", st.Seats+st.Zones+st.Labels))

	content := container.NewVBox(sizeSection, presets, bgSection, info)

	d := dialog.NewCustomConfirm("Canvas Settings", "Apply", "Cancel", container.NewVScroll(content),
		func(ok bool) {
			if !ok {
				return
			}
			if err := a.session.ResizeCanvas(width, height, bgEntry.Text); err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.refreshChrome()
		},
		a.window,
	)
	d.Resize(fyne.NewSize(420, 460))
	d.Show()
}
