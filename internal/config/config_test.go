package config

import (
	"strings"
	"testing"
	"time"
)

// envMap returns a lookup function backed by m.
func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Upload:  UploadConfig{MaxFileSize: 1},
		Run:     RunConfig{MaxConcurrent: 2, MaxWait: time.Second},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Catalog: CatalogConfig{DefaultPath: "CSGG.xlsx", CacheSize: 4},
		Factors: FactorsConfig{VirginEF: 2.15, PCRBenefit: 1.7},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(envMap(nil))
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Upload.MaxFileSize != 20971520 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 20971520)
	}
	if cfg.Catalog.DefaultPath != "CSGG.xlsx" {
		t.Errorf("Catalog.DefaultPath = %q, want %q", cfg.Catalog.DefaultPath, "CSGG.xlsx")
	}
	if cfg.Catalog.CacheSize != 16 {
		t.Errorf("Catalog.CacheSize = %d, want %d", cfg.Catalog.CacheSize, 16)
	}
	if cfg.Factors.VirginEF != 2.15 {
		t.Errorf("Factors.VirginEF = %v, want %v", cfg.Factors.VirginEF, 2.15)
	}
	if cfg.Factors.PCRBenefit != 1.70 {
		t.Errorf("Factors.PCRBenefit = %v, want %v", cfg.Factors.PCRBenefit, 1.70)
	}
	if cfg.Factors.BaselinePCRPercent != 0 {
		t.Errorf("Factors.BaselinePCRPercent = %v, want 0", cfg.Factors.BaselinePCRPercent)
	}
	if cfg.Run.MaxConcurrent != 4 || cfg.Run.MaxWait != 30*time.Second {
		t.Errorf("Run = %+v, want 4 slots and 30s wait", cfg.Run)
	}
	if cfg.Security.RequireAPIKey {
		t.Error("Security.RequireAPIKey should default to false")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadWith(envMap(map[string]string{
		"SERVER_PORT":                 "9090",
		"FACTOR_PCR_BENEFIT":          "1.95",
		"FACTOR_BASELINE_PCR_PERCENT": "25",
		"LOG_LEVEL":                   "debug",
	}))
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Factors.PCRBenefit != 1.95 {
		t.Errorf("Factors.PCRBenefit = %v, want %v", cfg.Factors.PCRBenefit, 1.95)
	}
	if cfg.Factors.BaselinePCRPercent != 25 {
		t.Errorf("Factors.BaselinePCRPercent = %v, want %v", cfg.Factors.BaselinePCRPercent, 25)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CATALOG_DEFAULT_PATH", "/data/catalog.xlsx")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Catalog.DefaultPath != "/data/catalog.xlsx" {
		t.Errorf("Catalog.DefaultPath = %q, want %q", cfg.Catalog.DefaultPath, "/data/catalog.xlsx")
	}
}

func TestLoad_InvalidNumber(t *testing.T) {
	_, err := LoadWith(envMap(map[string]string{"FACTOR_PCR_BENEFIT": "lots"}))
	if err == nil {
		t.Fatal("LoadWith() expected error for non-numeric FACTOR_PCR_BENEFIT")
	}
	if !strings.Contains(err.Error(), "FACTOR_PCR_BENEFIT") {
		t.Errorf("error should mention FACTOR_PCR_BENEFIT: %v", err)
	}
}

func TestLoad_Duration(t *testing.T) {
	cfg, err := LoadWith(envMap(map[string]string{
		"SERVER_READ_TIMEOUT":     "45s",
		"SERVER_SHUTDOWN_TIMEOUT": "1m30s",
	}))
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Server.ShutdownTimeout != 90*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want %v", cfg.Server.ShutdownTimeout, 90*time.Second)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	cfg, err := LoadWith(envMap(map[string]string{
		"REQUIRE_API_KEY": "true",
		"API_KEYS":        "alpha, beta , ,gamma",
	}))
	if err != nil {
		t.Fatalf("LoadWith() error = %v", err)
	}

	expected := []string{"alpha", "beta", "gamma"}
	if len(cfg.Security.APIKeys) != len(expected) {
		t.Fatalf("APIKeys length = %d, want %d", len(cfg.Security.APIKeys), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.APIKeys[i] != v {
			t.Errorf("APIKeys[%d] = %q, want %q", i, cfg.Security.APIKeys[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"zero run slots", func(c *Config) { c.Run.MaxConcurrent = 0 }, "RUN_MAX_CONCURRENT"},
		{"zero cache size", func(c *Config) { c.Catalog.CacheSize = 0 }, "CATALOG_CACHE_SIZE"},
		{"negative benefit", func(c *Config) { c.Factors.PCRBenefit = -1 }, "FACTOR_PCR_BENEFIT"},
		{"negative virgin EF", func(c *Config) { c.Factors.VirginEF = -0.1 }, "FACTOR_VIRGIN_EF"},
		{"baseline above 100", func(c *Config) { c.Factors.BaselinePCRPercent = 101 }, "FACTOR_BASELINE_PCR_PERCENT"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"api key required without keys", func(c *Config) { c.Security.RequireAPIKey = true }, "API_KEYS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error should mention %s: %v", tt.wantSub, err)
			}
		})
	}

	if err := validConfig().Validate(); err != nil {
		t.Errorf("valid config: Validate() error = %v", err)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Security.APIKeys = []string{"super-secret"}

	str := cfg.String()
	if strings.Contains(str, "super-secret") {
		t.Error("String() should mask API keys")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
