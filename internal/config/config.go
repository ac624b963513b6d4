package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Settings holds every path and tuning knob the collector uses. Zero-value
// fields are filled from Defaults, so a partial config file only overrides
// what it names.
type Settings struct {
	// ParaRoot is the root of the PARA layout (inbox, logs, watermark live under it).
	ParaRoot string `yaml:"para_root"`

	// CachePath points at Granola's cache-v3.json. Empty means the
	// platform default (see DefaultCachePath).
	CachePath string `yaml:"cache_path"`

	// LockPath is the fixed path of the single-instance lock file.
	LockPath string `yaml:"lock_path"`

	// TranscriptCap is the hard character cap for the transcript section.
	TranscriptCap int `yaml:"transcript_cap"`

	// LookbackDays is the first-run watermark window.
	LookbackDays int `yaml:"lookback_days"`
}

// Defaults returns the settings used when no config file is present.
func Defaults() (Settings, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Settings{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	cachePath, err := DefaultCachePath()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		ParaRoot:      filepath.Join(home, "para"),
		CachePath:     cachePath,
		LockPath:      filepath.Join(os.TempDir(), "granola-collector.lock"),
		TranscriptCap: 5000,
		LookbackDays:  30,
	}, nil
}

// Load reads the optional config file over the defaults. A missing file is
// not an error; a malformed one is (operator input, unlike the watermark).
func Load() (Settings, error) {
	settings, err := Defaults()
	if err != nil {
		return Settings{}, err
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return Settings{}, err
	}
	path := filepath.Join(configDir, "config.yaml")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if settings.TranscriptCap <= 0 {
		return Settings{}, fmt.Errorf("invalid transcript_cap %d in %s", settings.TranscriptCap, path)
	}
	if settings.LookbackDays <= 0 {
		return Settings{}, fmt.Errorf("invalid lookback_days %d in %s", settings.LookbackDays, path)
	}
	return settings, nil
}

// GetConfigDir returns the collector's config directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "granola-collector"), nil
}

// DefaultCachePath returns the platform default location of Granola's cache.
func DefaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", "Granola", "cache-v3.json"), nil
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "Granola", "cache-v3.json"), nil
	}
	return filepath.Join(home, ".local", "share", "Granola", "cache-v3.json"), nil
}

// InboxDir is where ingested meeting documents land.
func (s Settings) InboxDir() string {
	return filepath.Join(s.ParaRoot, "memory", "inbox")
}

// WatermarkPath is the persisted "processed up to" cutoff file.
func (s Settings) WatermarkPath() string {
	return filepath.Join(s.ParaRoot, ".last-granola-collection")
}

// LogPath is the collector's append-only run log.
func (s Settings) LogPath() string {
	return filepath.Join(s.ParaRoot, "logs", "granola-collector.log")
}

// LedgerPath is the SQLite run-history database.
func (s Settings) LedgerPath() string {
	return filepath.Join(s.ParaRoot, "logs", "collector.db")
}
