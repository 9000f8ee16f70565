package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixa-dev/caixa/internal/alerts"
	"github.com/caixa-dev/caixa/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Barbearia do Zé", model.BusinessBarbershop)
	cfg.Locale.Timezone = "America/Recife"
	cfg.Alerts.StreakMinDays = 4

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business, got.Business)
	assert.Equal(t, "America/Recife", got.Locale.Timezone)
	assert.Equal(t, cfg.Parser, got.Parser)
	assert.Equal(t, 4, got.Alerts.StreakMinDays)
	assert.InDelta(t, 0.7, got.Alerts.MonthlyDropRatio, 0.001)
	assert.Equal(t, cfg.Git, got.Git)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Salão Bela", model.BusinessSalon)

	assert.Equal(t, "Salão Bela", cfg.Business.Name)
	assert.Equal(t, model.BusinessSalon, cfg.Business.Type)
	_, err := uuid.Parse(cfg.Business.ID)
	assert.NoError(t, err)
	assert.Equal(t, "America/Sao_Paulo", cfg.Locale.Timezone)
	assert.Equal(t, model.Income, cfg.Parser.AmbiguousType)
	assert.Equal(t, 30, cfg.Alerts.LookbackDays)
	assert.Equal(t, 24, cfg.Alerts.DedupWindowHours)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Caixa", cfg.Git.AuthorName)
	assert.Equal(t, "caixa@localhost", cfg.Git.AuthorEmail)
}

func TestDefaults_FreshBusinessID(t *testing.T) {
	a := Default("A", model.BusinessRetail)
	b := Default("A", model.BusinessRetail)
	assert.NotEqual(t, a.Business.ID, b.Business.ID)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business: [\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Oficina", model.BusinessWorkshop)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Oficina")
	assert.Contains(t, contents, "type: workshop")
	assert.Contains(t, contents, "timezone: America/Sao_Paulo")
	assert.Contains(t, contents, "ambiguous_type: income")
	assert.Contains(t, contents, "dedup_window_hours: 24")
	assert.Contains(t, contents, "auto_commit: true")
}

func TestLoadRepo_EnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, FileName), Default("X", model.BusinessOther)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CAIXA_LOG_LEVEL=debug\nCAIXA_TIMEZONE=UTC\n"), 0o644))

	// godotenv never overrides variables that are already set.
	t.Setenv("CAIXA_LOG_LEVEL", "")
	t.Setenv("CAIXA_TIMEZONE", "")
	os.Unsetenv("CAIXA_LOG_LEVEL")
	os.Unsetenv("CAIXA_TIMEZONE")

	cfg, err := LoadRepo(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "UTC", cfg.Locale.Timezone)
}

func TestLoadRepo_EnvWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Save(filepath.Join(dir, FileName), Default("X", model.BusinessOther)))
	t.Setenv("CAIXA_LOG_LEVEL", "warn")
	t.Setenv("CAIXA_TIMEZONE", "")

	cfg, err := LoadRepo(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "America/Sao_Paulo", cfg.Locale.Timezone)
}

func TestLoadRepo_Missing(t *testing.T) {
	_, err := LoadRepo(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocation(t *testing.T) {
	cfg := Default("X", model.BusinessOther)

	cfg.Locale.Timezone = "UTC"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Locale.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Locale.Timezone = "Mars/Olympus"
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestThresholds(t *testing.T) {
	cfg := Default("X", model.BusinessOther)
	assert.Equal(t, alerts.DefaultThresholds().NoActivityHour, cfg.Thresholds().NoActivityHour)
	assert.True(t, cfg.Thresholds().MonthlyDropRatio.Equal(decimal.RequireFromString("0.7")))

	cfg.Alerts = AlertsConfig{SpikeWarningPercent: 80, StreakMinDays: 5}
	th := cfg.Thresholds()
	assert.True(t, th.SpikeWarningPercent.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, 5, th.StreakMinDays)
	// Unset fields keep the engine defaults.
	assert.True(t, th.SpikeInfoPercent.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 12, th.NoActivityHour)
}

func TestWindows(t *testing.T) {
	cfg := Default("X", model.BusinessOther)
	assert.Equal(t, 24*time.Hour, cfg.DedupWindow())
	assert.Equal(t, 30, cfg.Lookback())

	cfg.Alerts.DedupWindowHours = 6
	cfg.Alerts.LookbackDays = 0
	assert.Equal(t, 6*time.Hour, cfg.DedupWindow())
	assert.Equal(t, 30, cfg.Lookback())
}
