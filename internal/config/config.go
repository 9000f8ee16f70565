package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/caixa-dev/caixa/internal/alerts"
	"github.com/caixa-dev/caixa/internal/model"
)

// FileName is the project configuration file at the repo root.
const FileName = "caixa.yaml"

// Config represents the top-level caixa.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Locale   LocaleConfig   `yaml:"locale"`
	Parser   ParserConfig   `yaml:"parser"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Log      LogConfig      `yaml:"log"`
	Git      GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the business the project tracks.
type BusinessConfig struct {
	ID   string             `yaml:"id"`
	Name string             `yaml:"name"`
	Type model.BusinessType `yaml:"type"`
}

// LocaleConfig controls how days and months are cut.
type LocaleConfig struct {
	Timezone string `yaml:"timezone"` // IANA name, e.g. "America/Sao_Paulo"
}

// ParserConfig tunes the text parser.
type ParserConfig struct {
	AmbiguousType model.TxnType `yaml:"ambiguous_type"`
	Vocabulary    string        `yaml:"vocabulary"` // relative to the repo root
}

// AlertsConfig tunes alert generation and storage.
type AlertsConfig struct {
	LookbackDays        int     `yaml:"lookback_days"`
	DedupWindowHours    int     `yaml:"dedup_window_hours"`
	NoActivityHour      int     `yaml:"no_activity_hour"`
	SpikeInfoPercent    float64 `yaml:"spike_info_percent"`
	SpikeWarningPercent float64 `yaml:"spike_warning_percent"`
	StreakMinDays       int     `yaml:"streak_min_days"`
	MonthlyMinDay       int     `yaml:"monthly_min_day"`
	MonthlyDropRatio    float64 `yaml:"monthly_drop_ratio"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a caixa.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadRepo reads <repoRoot>/caixa.yaml and applies overrides from the
// environment, after loading <repoRoot>/.env when present.
func LoadRepo(repoRoot string) (*Config, error) {
	cfg, err := Load(filepath.Join(repoRoot, FileName))
	if err != nil {
		return nil, err
	}

	envPath := filepath.Join(repoRoot, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envPath, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CAIXA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CAIXA_TIMEZONE"); v != "" {
		c.Locale.Timezone = v
	}
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string, businessType model.BusinessType) *Config {
	return &Config{
		Business: BusinessConfig{
			ID:   uuid.NewString(),
			Name: businessName,
			Type: businessType,
		},
		Locale: LocaleConfig{
			Timezone: "America/Sao_Paulo",
		},
		Parser: ParserConfig{
			AmbiguousType: model.Income,
			Vocabulary:    filepath.Join("rules", "vocabulary.yaml"),
		},
		Alerts: AlertsConfig{
			LookbackDays:        30,
			DedupWindowHours:    24,
			NoActivityHour:      12,
			SpikeInfoPercent:    30,
			SpikeWarningPercent: 50,
			StreakMinDays:       3,
			MonthlyMinDay:       5,
			MonthlyDropRatio:    0.7,
		},
		Log: LogConfig{
			Level: "info",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Caixa",
			AuthorEmail: "caixa@localhost",
		},
	}
}

// Location resolves the configured time zone. An empty name means the
// process's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Locale.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Locale.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Locale.Timezone, err)
	}
	return loc, nil
}

// Thresholds converts the alert settings for the engine. Zero values fall
// back to the engine defaults.
func (c *Config) Thresholds() alerts.Thresholds {
	t := alerts.DefaultThresholds()
	a := c.Alerts
	if a.NoActivityHour > 0 {
		t.NoActivityHour = a.NoActivityHour
	}
	if a.SpikeInfoPercent > 0 {
		t.SpikeInfoPercent = decimal.NewFromFloat(a.SpikeInfoPercent)
	}
	if a.SpikeWarningPercent > 0 {
		t.SpikeWarningPercent = decimal.NewFromFloat(a.SpikeWarningPercent)
	}
	if a.StreakMinDays > 0 {
		t.StreakMinDays = a.StreakMinDays
	}
	if a.MonthlyMinDay > 0 {
		t.MonthlyMinDay = a.MonthlyMinDay
	}
	if a.MonthlyDropRatio > 0 {
		t.MonthlyDropRatio = decimal.NewFromFloat(a.MonthlyDropRatio)
	}
	return t
}

// DedupWindow is how long a stored alert suppresses another of its type.
func (c *Config) DedupWindow() time.Duration {
	if c.Alerts.DedupWindowHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Alerts.DedupWindowHours) * time.Hour
}

// Lookback is how many days of history feed alert generation.
func (c *Config) Lookback() int {
	if c.Alerts.LookbackDays <= 0 {
		return 30
	}
	return c.Alerts.LookbackDays
}
