package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxRecentLayouts = 10

// AppConfig holds application-wide preferences and editor defaults.
type AppConfig struct {
	// Canvas defaults for new layouts
	CanvasWidth  float64 `json:"canvas_width" validate:"gt=0"`
	CanvasHeight float64 `json:"canvas_height" validate:"gt=0"`
	Background   string  `json:"background" validate:"required"`

	// Editor behaviour
	GridPitch     float64 `json:"grid_pitch" validate:"gt=0"`     // seat spacing for multi-seat drags
	HistoryDepth  int     `json:"history_depth" validate:"eq=0|gte=2"` // 0 = unbounded
	AspectLock    bool    `json:"aspect_lock"`
	SeatRadius    float64 `json:"seat_radius" validate:"gt=0"`
	SeatCategory  string  `json:"seat_category"`
	SeatPrice     float64 `json:"seat_price" validate:"gte=0"`
	LogLevel      string  `json:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	ShowSeatLabel bool    `json:"show_seat_label"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval" validate:"gte=0"` // minutes, 0 = disabled
	RecentLayouts    []string `json:"recent_layouts"`
	Theme            string   `json:"theme" validate:"oneof=light dark system"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		CanvasWidth:      DefaultCanvasWidth,
		CanvasHeight:     DefaultCanvasHeight,
		Background:       DefaultBackground,
		GridPitch:        60,
		HistoryDepth:     100,
		AspectLock:       false,
		SeatRadius:       DefaultSeatRadius,
		SeatCategory:     DefaultSeatCategory,
		SeatPrice:        0,
		LogLevel:         "info",
		ShowSeatLabel:    true,
		AutoSaveInterval: 0,
		RecentLayouts:    []string{},
		Theme:            "system",
	}
}

var configValidator = validator.New()

// Validate checks the config values against their constraints.
func (c AppConfig) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// NewScene creates an empty scene using the configured canvas defaults.
func (c AppConfig) NewScene() *Scene {
	s := NewScene(c.CanvasWidth, c.CanvasHeight)
	s.Background = c.Background
	return s
}

// AddRecentLayout moves path to the front of the recent list, keeping it short.
func (c *AppConfig) AddRecentLayout(path string) {
	out := []string{path}
	for _, p := range c.RecentLayouts {
		if p != path {
			out = append(out, p)
		}
	}
	if len(out) > maxRecentLayouts {
		out = out[:maxRecentLayouts]
	}
	c.RecentLayouts = out
}
