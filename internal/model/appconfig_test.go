package model

import "testing"

func TestDefaultAppConfigIsValid(t *testing.T) {
	cfg := DefaultAppConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
	if cfg.GridPitch != 60 {
		t.Errorf("expected default grid pitch 60, got %f", cfg.GridPitch)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.GridPitch = 0
	cfg.Theme = "purple"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestValidateRejectsNegativeHistoryDepth(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.HistoryDepth = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for negative history depth")
	}
}

func TestValidateHistoryDepthOfOne(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.HistoryDepth = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for a history depth of 1")
	}
	for _, depth := range []int{0, 2, 50} {
		cfg.HistoryDepth = depth
		if err := cfg.Validate(); err != nil {
			t.Errorf("history depth %d should validate, got: %v", depth, err)
		}
	}
}

func TestConfigNewScene(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.CanvasWidth = 640
	cfg.CanvasHeight = 480
	cfg.Background = "#EEEEEE"

	s := cfg.NewScene()
	if s.Width != 640 || s.Height != 480 {
		t.Errorf("expected 640x480 scene, got %fx%f", s.Width, s.Height)
	}
	if s.Background != "#EEEEEE" {
		t.Errorf("expected background #EEEEEE, got %s", s.Background)
	}
}

func TestAddRecentLayout(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentLayout("a.seatmap")
	cfg.AddRecentLayout("b.seatmap")
	cfg.AddRecentLayout("a.seatmap")

	if len(cfg.RecentLayouts) != 2 {
		t.Fatalf("expected 2 recent layouts, got %d", len(cfg.RecentLayouts))
	}
	if cfg.RecentLayouts[0] != "a.seatmap" {
		t.Errorf("expected most recent first, got %v", cfg.RecentLayouts)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentLayout(string(rune('c'+i)) + ".seatmap")
	}
	if len(cfg.RecentLayouts) != maxRecentLayouts {
		t.Errorf("expected recent list capped at %d, got %d", maxRecentLayouts, len(cfg.RecentLayouts))
	}
}
