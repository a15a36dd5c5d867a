package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
  read_timeout: 5s
  cors_origins: ["http://localhost:3000"]
calendar:
  hours_per_day: "7.5"
  year: 2024
  max_range_years: 3
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q, want :9090", cfg.Server.Addr)
	}
	if got := cfg.Server.GetReadTimeout(); got != 5*time.Second {
		t.Errorf("GetReadTimeout() = %v, want 5s", got)
	}
	if got := cfg.Server.GetWriteTimeout(); got != 15*time.Second {
		t.Errorf("GetWriteTimeout() = %v, want default 15s", got)
	}
	if len(cfg.Server.CORSOrigins) != 1 {
		t.Errorf("CORSOrigins = %v, want one origin", cfg.Server.CORSOrigins)
	}
	if got := cfg.Calendar.GetHoursPerDay().String(); got != "7.5" {
		t.Errorf("GetHoursPerDay() = %s, want 7.5", got)
	}
	if got := cfg.Calendar.GetMaxRangeYears(); got != 3 {
		t.Errorf("GetMaxRangeYears() = %d, want 3", got)
	}
	if got := cfg.Calendar.GetYear(time.Now()); got != 2024 {
		t.Errorf("GetYear() = %d, want 2024", got)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	t.Setenv("DIAS_UTEIS_SERVER_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Server.Addr = %q, want :7070", cfg.Server.Addr)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() error = nil, want error for missing file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Addr: ":8080", ReadTimeout: "15s"},
			Calendar: CalendarConfig{HoursPerDay: "8"},
			Logging:  LoggingConfig{Level: "info"},
		}
	}

	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"bad timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, true},
		{"negative sweep", func(c *Config) { c.Server.SweepInterval = "-1m" }, true},
		{"zero hours", func(c *Config) { c.Calendar.HoursPerDay = "0" }, true},
		{"comma hours", func(c *Config) { c.Calendar.HoursPerDay = "7,5" }, true},
		{"year before gregorian", func(c *Config) { c.Calendar.Year = 1500 }, true},
		{"negative max range", func(c *Config) { c.Calendar.MaxRangeYears = -1 }, true},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetters_Defaults(t *testing.T) {
	var c Config
	if got := c.Server.GetSessionIdleTTL(); got != 12*time.Hour {
		t.Errorf("GetSessionIdleTTL() = %v, want 12h", got)
	}
	if got := c.Server.GetSweepInterval(); got != 10*time.Minute {
		t.Errorf("GetSweepInterval() = %v, want 10m", got)
	}
	if got := c.Calendar.GetHoursPerDay().String(); got != "8" {
		t.Errorf("GetHoursPerDay() = %s, want 8", got)
	}
	if got := c.Calendar.GetMaxRangeYears(); got != 10 {
		t.Errorf("GetMaxRangeYears() = %d, want 10", got)
	}
	now := time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC)
	if got := c.Calendar.GetYear(now); got != 2031 {
		t.Errorf("GetYear() = %d, want 2031", got)
	}
}
