package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/seatmap/internal/model"
)

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version       string               `json:"version"`
	CreatedAt     string               `json:"created_at"`
	Config        model.AppConfig      `json:"config"`
	PriceProfiles []model.PriceProfile `json:"price_profiles"`
	Templates     []LayoutTemplate     `json:"templates"`
}

// ExportAllData exports the config, custom price profiles and layout templates
// to a single JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, profiles []model.PriceProfile, templates TemplateStore) error {
	backup := BackupData{
		Version:       "1.0.0",
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Config:        config,
		PriceProfiles: profiles,
		Templates:     templates.Templates,
	}
	if backup.PriceProfiles == nil {
		backup.PriceProfiles = []model.PriceProfile{}
	}
	if backup.Templates == nil {
		backup.Templates = []LayoutTemplate{}
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported data.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := backup.Config.Validate(); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup file: %w", err)
	}
	// Ensure slices are never nil
	if backup.Config.RecentLayouts == nil {
		backup.Config.RecentLayouts = []string{}
	}
	if backup.PriceProfiles == nil {
		backup.PriceProfiles = []model.PriceProfile{}
	}
	if backup.Templates == nil {
		backup.Templates = []LayoutTemplate{}
	}
	return backup, nil
}
