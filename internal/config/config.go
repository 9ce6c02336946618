package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dayplanner/internal/scheduler"
)

// Config holds the server and scheduling settings loaded from the optional
// YAML file. Flags and environment variables take precedence for the server
// fields; the workday section has no flag equivalent.
type Config struct {
	Addr      string  `yaml:"addr"`
	DBPath    string  `yaml:"db_path"`
	StaticDir string  `yaml:"static_dir"`
	Workday   Workday `yaml:"workday"`
}

// Workday describes the default daily scheduling window as wall-clock times.
type Workday struct {
	Start        string `yaml:"start"`
	End          string `yaml:"end"`
	BreakMinutes int    `yaml:"break_minutes"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{
		Addr:      ":8080",
		DBPath:    "data/dayplanner.db",
		StaticDir: "web/dist",
		Workday: Workday{
			Start: "08:00",
			End:   "20:00",
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Workday.WindowOn(time.Now()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WindowOn resolves the wall-clock workday bounds against the given day.
func (w Workday) WindowOn(day time.Time) (scheduler.Window, error) {
	start, err := clockOn(w.Start, day)
	if err != nil {
		return scheduler.Window{}, fmt.Errorf("workday start: %w", err)
	}
	end, err := clockOn(w.End, day)
	if err != nil {
		return scheduler.Window{}, fmt.Errorf("workday end: %w", err)
	}
	if !start.Before(end) {
		return scheduler.Window{}, fmt.Errorf("workday start %s is not before end %s", w.Start, w.End)
	}
	return scheduler.Window{Start: start, End: end}, nil
}

func clockOn(clock string, day time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
