package config

import (
	"os"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.DatabasePath != "./data/parsical.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "./data/parsical.db")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
	if cfg.Timezone != "Asia/Tehran" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "Asia/Tehran")
	}
	if cfg.DefaultPattern != "%Y/%m/%d" {
		t.Errorf("DefaultPattern = %q, want %q", cfg.DefaultPattern, "%Y/%m/%d")
	}
	if cfg.MaxRangeDays != 93 {
		t.Errorf("MaxRangeDays = %d, want 93", cfg.MaxRangeDays)
	}
	if cfg.RateLimitRPS != 20 || cfg.RateLimitBurst != 40 {
		t.Errorf("rate limit = %d/%d, want 20/40", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "production")
	t.Setenv("DATABASE_PATH", "/data/test.db")
	t.Setenv("API_KEY", "secret-key-123")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("DEFAULT_PATTERN", "%d %B %Y")
	t.Setenv("MAX_RANGE_DAYS", "31")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, "UTC")
	}
	if cfg.DefaultPattern != "%d %B %Y" {
		t.Errorf("DefaultPattern = %q, want %q", cfg.DefaultPattern, "%d %B %Y")
	}
	if cfg.MaxRangeDays != 31 {
		t.Errorf("MaxRangeDays = %d, want 31", cfg.MaxRangeDays)
	}
}

func TestLoad_InvalidTimezone(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIMEZONE", "Nowhere/Special")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() accepted an unknown time zone")
	}
	if !strings.Contains(err.Error(), "TIMEZONE") {
		t.Errorf("error %q does not mention TIMEZONE", err)
	}
}

func TestFromEnv_DoesNotValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("TIMEZONE", "UTC")

	// Production without API_KEY fails Load but is fine for tools.
	if _, err := Load(); err == nil {
		t.Fatal("Load() accepted production without API_KEY")
	}

	cfg := FromEnv()
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
	}
	if cfg.DatabasePath != "./data/parsical.db" {
		t.Errorf("DatabasePath = %q, want default", cfg.DatabasePath)
	}
}

// validConfig returns a development config that passes Validate.
func validConfig() Config {
	return Config{
		Port:           8080,
		Env:            EnvDevelopment,
		DatabasePath:   "./data/test.db",
		LogLevel:       "info",
		LogFormat:      "text",
		Timezone:       "Asia/Tehran",
		DefaultPattern: "%Y/%m/%d",
		MaxRangeDays:   93,
		RateLimitRPS:   20,
		RateLimitBurst: 40,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid development config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid production config",
			modify: func(c *Config) {
				c.Env = EnvProduction
				c.APIKey = "required-in-prod"
				c.LogFormat = "json"
			},
			wantErr: false,
		},
		{
			name:    "production requires API key",
			modify:  func(c *Config) { c.Env = EnvProduction },
			wantErr: true,
		},
		{
			name:    "invalid port - too low",
			modify:  func(c *Config) { c.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port - too high",
			modify:  func(c *Config) { c.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid environment",
			modify:  func(c *Config) { c.Env = "invalid" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: true,
		},
		{
			name:    "empty database path",
			modify:  func(c *Config) { c.DatabasePath = "" },
			wantErr: true,
		},
		{
			name:    "empty timezone",
			modify:  func(c *Config) { c.Timezone = "" },
			wantErr: true,
		},
		{
			name:    "empty default pattern",
			modify:  func(c *Config) { c.DefaultPattern = "" },
			wantErr: true,
		},
		{
			name:    "range limit too small",
			modify:  func(c *Config) { c.MaxRangeDays = 0 },
			wantErr: true,
		},
		{
			name:    "rate limiting disabled",
			modify:  func(c *Config) { c.RateLimitRPS, c.RateLimitBurst = 0, 0 },
			wantErr: false,
		},
		{
			name:    "negative rate limit",
			modify:  func(c *Config) { c.RateLimitRPS = -1 },
			wantErr: true,
		},
		{
			name: "production requires rate limiting",
			modify: func(c *Config) {
				c.Env = EnvProduction
				c.APIKey = "required-in-prod"
				c.RateLimitRPS, c.RateLimitBurst = 0, 0
			},
			wantErr: true,
		},
		{
			name:    "rate limit without burst",
			modify:  func(c *Config) { c.RateLimitBurst = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.Port = 0
	cfg.LogLevel = "loud"
	cfg.MaxRangeDays = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"PORT", "LOG_LEVEL", "MAX_RANGE_DAYS"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := validConfig()
	if got := cfg.Location().String(); got != "Asia/Tehran" {
		t.Errorf("Location() = %q, want Asia/Tehran", got)
	}

	cfg.Timezone = "Not/AZone"
	if got := cfg.Location().String(); got != "UTC" {
		t.Errorf("Location() = %q, want UTC fallback", got)
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

// clearEnv removes all config-related environment variables for the
// duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"PORT", "ENV", "DATABASE_PATH", "API_KEY",
		"LOG_LEVEL", "LOG_FORMAT",
		"TIMEZONE", "DEFAULT_PATTERN", "MAX_RANGE_DAYS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	}
	for _, v := range vars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}
