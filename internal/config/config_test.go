package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:          8080,
		CORSOrigins:   []string{"*"},
		StoreBackend:  BackendMongo,
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "polarix",
		JWTSecret:     "secret",
		TokenTTL:      time.Hour,
		SMTPPort:      587,
		TemplateDir:   "./dummy_data",
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %s, want 1h", cfg.TokenTTL)
	}
	if cfg.MongoDatabase != "polarix" {
		t.Errorf("MongoDatabase = %q, want polarix", cfg.MongoDatabase)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %q, want :9090", cfg.Addr())
	}
	if cfg.StoreBackend != BackendMemory {
		t.Errorf("StoreBackend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %s, want 30m", cfg.TokenTTL)
	}
}

func TestLoad_CORSOriginsList(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "http://localhost:5173,https://app.polarix.io")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://app.polarix.io" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid mongo config",
			mutate: func(c *Config) {},
		},
		{
			name: "valid memory config without mongo uri",
			mutate: func(c *Config) {
				c.StoreBackend = BackendMemory
				c.MongoURI = ""
			},
		},
		{
			name:        "missing jwt secret",
			mutate:      func(c *Config) { c.JWTSecret = "" },
			wantErr:     true,
			errorString: "JWT_SECRET is required",
		},
		{
			name:        "mongo backend without uri",
			mutate:      func(c *Config) { c.MongoURI = "" },
			wantErr:     true,
			errorString: "MONGO_URI is required",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.StoreBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid store backend 'postgres'",
		},
		{
			name:        "port out of range",
			mutate:      func(c *Config) { c.Port = 70000 },
			wantErr:     true,
			errorString: "invalid port 70000",
		},
		{
			name:        "smtp without sender",
			mutate:      func(c *Config) { c.SMTPHost = "smtp.example.com" },
			wantErr:     true,
			errorString: "MAIL_FROM is required",
		},
		{
			name: "no template destination",
			mutate: func(c *Config) {
				c.TemplateDir = ""
				c.TemplateBucket = ""
			},
			wantErr:     true,
			errorString: "TEMPLATE_DIR or TEMPLATE_BUCKET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorString) {
				t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	cfg.MongoURI = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"JWT_SECRET", "MONGO_URI"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err.Error(), want)
		}
	}
}
