// Seatmap — Venue Seat Layout Editor
//
// A cross-platform desktop application for laying out seats, zones and
// labels on a venue plan, pricing seats by category and exporting
// printable plans, seat tags and seat lists.
//
// Build:
//   go build -o seatmap ./cmd/seatmap
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o seatmap.exe ./cmd/seatmap
//   GOOS=darwin  GOARCH=amd64 go build -o seatmap-darwin ./cmd/seatmap
//
// Environment (also read from a .env file in the working directory):
//   SEATMAP_CONFIG      path of the config file (default ~/.seatmap/config.json)
//   SEATMAP_LOG_LEVEL   debug, info, warn or error
//   SEATMAP_LOG_FORMAT  text or json

package main

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"github.com/joho/godotenv"

	"github.com/piwi3910/seatmap/internal/logging"
	"github.com/piwi3910/seatmap/internal/model"
	"github.com/piwi3910/seatmap/internal/project"
	"github.com/piwi3910/seatmap/internal/ui"
)

func main() {
	envErr := godotenv.Load()

	cfg, cfgErr := project.LoadAppConfig(project.DefaultConfigPath())
	if cfgErr != nil {
		cfg = model.DefaultAppConfig()
	}
	log := logging.New(cfg.LogLevel)
	if envErr != nil {
		log.Debug("no .env file loaded", slog.String("error", envErr.Error()))
	}
	if cfgErr != nil {
		log.Warn("using default configuration", slog.String("error", cfgErr.Error()))
	}

	application := app.NewWithID("com.piwi3910.seatmap")
	application.Settings().SetTheme(ui.NewSeatmapThemeForConfig(cfg.Theme))
	window := application.NewWindow("Seatmap — Untitled")

	appUI := ui.NewApp(application, window, cfg, log)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1400, 850))
	window.CenterOnScreen()
	window.SetOnClosed(appUI.Close)

	log.Info("seatmap started", slog.String("config", project.DefaultConfigPath()))
	window.ShowAndRun()
}
