package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/seatmap/internal/model"
)

// DefaultProfilesPath returns the default file path for custom price profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "price_profiles.json")
}

// SaveCustomProfiles saves custom price profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.PriceProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom price profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.PriceProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.PriceProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.PriceProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []model.PriceProfile{}
	}
	return profiles, nil
}

// AllProfiles returns the built-in profiles followed by the custom ones.
func AllProfiles(custom []model.PriceProfile) []model.PriceProfile {
	return append(model.BuiltInPriceProfiles(), custom...)
}

// ExportProfile exports a single profile to a JSON file (for sharing).
func ExportProfile(path string, profile model.PriceProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single price profile from a JSON file.
func ImportProfile(path string) (model.PriceProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PriceProfile{}, err
	}

	var profile model.PriceProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.PriceProfile{}, err
	}

	if profile.Name == "" {
		return model.PriceProfile{}, errors.New("imported profile has no name")
	}
	if err := profile.Validate(); err != nil {
		return model.PriceProfile{}, fmt.Errorf("imported profile %q: %w", profile.Name, err)
	}
	return profile, nil
}
