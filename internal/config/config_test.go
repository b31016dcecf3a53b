package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Path)
	assert.Equal(t, "monday", cfg.FirstDayOfWeek)
	assert.Equal(t, "right", cfg.Direction)
	assert.Equal(t, filepath.Join(home, ".config", "adate", "state.json"), cfg.StateFile)
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, "date", cfg.Fields[0].Name)
	assert.Equal(t, "monday", cfg.Fields[0].FirstDayOfWeek)
}

func TestLoadExplicitPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, t.TempDir(), `
first_day_of_week = "sunday"
direction = "left"
locale_file = "~/fi.yaml"
log_file = "~/adate.log"

[[field]]
name = "start"
label = "Start date"
min = "2020-01-02"
required = true

[[field]]
name = "end"
first_day_of_week = "saturday"
direction = "right"
disabled_weekdays = ["sat", "sun"]
disabled_dates = ["2020-12-25"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, filepath.Join(home, "fi.yaml"), cfg.LocaleFile)
	assert.Equal(t, filepath.Join(home, "adate.log"), cfg.LogFile)
	require.Len(t, cfg.Fields, 2)

	start := cfg.Fields[0]
	assert.Equal(t, "Start date", start.Label)
	assert.Equal(t, "2020-01-02", start.Min)
	assert.True(t, start.Required)
	assert.Equal(t, "sunday", start.FirstDayOfWeek)
	assert.Equal(t, "left", start.Direction)

	end := cfg.Fields[1]
	assert.Equal(t, "saturday", end.FirstDayOfWeek)
	assert.Equal(t, "right", end.Direction)
	assert.Equal(t, []string{"sat", "sun"}, end.DisabledWeekdays)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := writeConfig(t, t.TempDir(), `first_day_of_week = "wed"`)
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "wed", cfg.FirstDayOfWeek)
	assert.Equal(t, path, cfg.Path)
}

func TestLoadDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, "")

	dir := filepath.Join(home, ".config", "adate")
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := writeConfig(t, dir, `direction = "left"`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "left", cfg.Direction)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", `first_day_of_week = `, "error loading config"},
		{"weekday", `first_day_of_week = "someday"`, "first_day_of_week"},
		{"direction", `direction = "up"`, "invalid direction"},
		{"range", "[[field]]\nname = \"d\"\nmin = \"2020-02-01\"\nmax = \"2020-01-01\"", "before min"},
		{"duplicate", "[[field]]\nname = \"d\"\n[[field]]\nname = \"d\"", "duplicate field name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	assert.Equal(t, "/home/u/x", expandPath("~/x", "/home/u"))
	assert.Equal(t, "/home/u", expandPath("~", "/home/u"))
	assert.Equal(t, "~other/x", expandPath("~other/x", "/home/u"))
	assert.Equal(t, "/abs", expandPath("/abs", "/home/u"))
	assert.Equal(t, "", expandPath("", "/home/u"))
}
