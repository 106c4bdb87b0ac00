package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Static timetable feed, a zipped dump.
	StaticURL string `yaml:"static_url" validate:"required,url"`

	// Realtime trip-update feed. Optional; without it every board
	// entry stays scheduled.
	RealtimeURL string `yaml:"realtime_url" validate:"omitempty,url"`

	// IANA zone all "today" computations happen in.
	Timezone string `yaml:"timezone"`

	// Local hour before which the effective service day is still
	// yesterday.
	NightCutoffHour int `yaml:"night_cutoff_hour" validate:"min=0,max=23"`

	// How long a fetched realtime delay map is served before the
	// upstream is asked again.
	LiveTTL time.Duration `yaml:"live_ttl"`

	// Board window, in minutes of scheduled time around now.
	WindowBeforeMin int `yaml:"window_before_min" validate:"min=0"`
	WindowAfterMin  int `yaml:"window_after_min" validate:"min=0"`

	// Maximum entries per board.
	BoardCap int `yaml:"board_cap" validate:"min=1"`

	// Nearest-station queries beyond this report no match.
	MaxStationKm float64 `yaml:"max_station_km" validate:"gt=0"`

	// Interval of the periodic snapshot refresh check.
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	MetricsAddr string `yaml:"metrics_addr"`
}

// Load reads the YAML config at path, fills in defaults and applies
// environment overrides. A .env file is honored if present, so local
// runs don't need feed URLs committed anywhere.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Timezone:        "Europe/Zagreb",
		NightCutoffHour: 4,
		LiveTTL:         8 * time.Second,
		WindowBeforeMin: 2,
		WindowAfterMin:  90,
		BoardCap:        15,
		MaxStationKm:    5,
		RefreshInterval: 1 * time.Hour,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv("ZET_STATIC_URL"); v != "" {
		cfg.StaticURL = v
	}
	if v := os.Getenv("ZET_REALTIME_URL"); v != "" {
		cfg.RealtimeURL = v
	}
	if v := os.Getenv("ZET_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
