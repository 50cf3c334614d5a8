package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/seatmap/internal/export"
	"github.com/piwi3910/seatmap/internal/model"
)

// ─── Exports ───────────────────────────────────────────────

func (a *App) exportLayoutPDF() {
	a.exportFile(a.layoutName+".pdf", func(path string) error {
		return export.ExportLayoutPDF(path, a.layoutName, a.session.Scene())
	})
}

func (a *App) exportSeatTags() {
	a.exportFile(a.layoutName+"-tags.pdf", func(path string) error {
		return export.ExportSeatTags(path, a.layoutName, a.session.Scene())
	})
}

func (a *App) exportSeatList() {
	a.exportFile(a.layoutName+"-seats.xlsx", func(path string) error {
		return export.ExportSeatList(path, a.session.Scene())
	})
}

// exportFile asks for a destination and runs write against it.
func (a *App) exportFile(defaultName string, write func(path string) error) {
	a.session.FinishEditing()
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := write(path); err != nil {
			if errors.Is(err, export.ErrEmptyLayout) {
				dialog.ShowInformation("Nothing to export", "Add seats, zones or labels first.", a.window)
				return
			}
			a.log.Error("export failed", slog.String("path", path), slog.String("error", err.Error()))
			dialog.ShowError(err, a.window)
			return
		}
		a.log.Info("exported", slog.String("path", path))
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// ─── Summary ───────────────────────────────────────────────

func (a *App) showSummaryDialog() {
	st := a.session.Scene().Stats()

	totals := container.NewGridWithColumns(2,
		widget.NewLabel("Seats"), widget.NewLabel(fmt.Sprintf("%d", st.Seats)),
		widget.NewLabel("Zones"), widget.NewLabel(fmt.Sprintf("%d", st.Zones)),
		widget.NewLabel("Labels"), widget.NewLabel(fmt.Sprintf("%d", st.Labels)),
		widget.NewLabel("Total value"), widget.NewLabel(fmt.Sprintf("%.2f", st.Revenue)),
		widget.NewLabel("Sold value"), widget.NewLabel(fmt.Sprintf("%.2f", st.SoldValue)),
		widget.NewLabel("Open value"), widget.NewLabel(fmt.Sprintf("%.2f", st.OpenValue)),
	)

	statuses := container.NewGridWithColumns(2)
	for _, s := range model.SeatStatuses {
		statuses.Add(widget.NewLabel(string(s)))
		statuses.Add(widget.NewLabel(fmt.Sprintf("%d", st.ByStatus[s])))
	}

	cats := st.Categories()
	sort.Strings(cats)
	categories := container.NewGridWithColumns(2)
	for _, c := range cats {
		categories.Add(widget.NewLabel(c))
		categories.Add(widget.NewLabel(fmt.Sprintf("%d", st.ByCategory[c])))
	}

	content := container.NewVBox(
		widget.NewCard("Totals", "", totals),
		widget.NewCard("By Status", "", statuses),
		widget.NewCard("By Category", "", categories),
	)

	d := dialog.NewCustom("Layout Summary", "Close", container.NewVScroll(content), a.window)
	d.Resize(fyne.NewSize(400, 500))
	d.Show()
}
