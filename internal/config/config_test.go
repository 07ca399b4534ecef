package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	configPath := "config_test.yaml"
	configContent := `
app:
  environment: testing
  name: localewatch-test
  version: 1.0.0
server:
  host: 127.0.0.1
  port: 8080
database:
  host: localhost
  port: 3306
  name: localewatch_test
  user: testuser
  password: testpass
rate_limit:
  update_limit: 5
  update_window: 30s
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	defer os.Remove(configPath)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.App.Environment != "testing" {
		t.Errorf("Expected Environment = %s, got %s", "testing", cfg.App.Environment)
	}
	if cfg.App.Name != "localewatch-test" {
		t.Errorf("Expected Name = %s, got %s", "localewatch-test", cfg.App.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Expected Port = %d, got %d", 8080, cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Expected Host = %s, got %s", "localhost", cfg.Database.Host)
	}
	if cfg.RateLimit.UpdateLimit != 5 {
		t.Errorf("Expected UpdateLimit = %d, got %d", 5, cfg.RateLimit.UpdateLimit)
	}
	if cfg.RateLimit.UpdateWindow != 30*time.Second {
		t.Errorf("Expected UpdateWindow = %v, got %v", 30*time.Second, cfg.RateLimit.UpdateWindow)
	}
}

func TestLoadWithInvalidPath(t *testing.T) {
	// Database details come from the environment in this mode
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_NAME", "envdb")

	cfg, err := Load("non_existent_config.yaml")
	if err != nil {
		t.Fatalf("Load() with non-existent file should not error, got %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("Expected default Environment = %s, got %s", "development", cfg.App.Environment)
	}
	if cfg.Database.User != "envuser" {
		t.Errorf("Expected User from env = %s, got %s", "envuser", cfg.Database.User)
	}
}

func TestGet(t *testing.T) {
	origCfg := cfg
	defer func() { cfg = origCfg }()

	testCfg := &AppConfig{App: AppSettings{Name: "from-get"}}
	cfg = testCfg

	if got := Get(); got.App.Name != "from-get" {
		t.Errorf("Get() returned unexpected config: %+v", got)
	}
}

func TestSetDefaults(t *testing.T) {
	config := &AppConfig{}
	setDefaults(config)

	if config.App.Environment != "development" {
		t.Errorf("Expected default environment, got %s", config.App.Environment)
	}
	if config.Server.Port == 0 {
		t.Error("Expected default server port to be set")
	}
	if config.JWT.Expiry == 0 {
		t.Error("Expected default JWT expiry to be set")
	}
	if config.Security.NonceLifetime == 0 {
		t.Error("Expected default nonce lifetime to be set")
	}
	if config.RateLimit.UpdateLimit == 0 {
		t.Error("Expected default update limit to be set")
	}
	if config.Logging.Level == "" {
		t.Error("Expected default log level to be set")
	}
	if len(config.CORS.AllowedOrigins) == 0 {
		t.Error("Expected default allowed origins to be set")
	}
}

func TestValidateConfig(t *testing.T) {
	base := func() *AppConfig {
		config := &AppConfig{}
		setDefaults(config)
		config.Database.User = "user"
		config.Database.Host = "localhost"
		config.Database.Name = "db"
		return config
	}

	t.Run("valid development config", func(t *testing.T) {
		if err := validateConfig(base()); err != nil {
			t.Errorf("validateConfig() error = %v", err)
		}
	})

	t.Run("missing database user", func(t *testing.T) {
		config := base()
		config.Database.User = ""
		if err := validateConfig(config); err == nil {
			t.Error("Expected error for missing database user")
		}
	})

	t.Run("production requires secrets", func(t *testing.T) {
		config := base()
		config.App.Environment = "production"
		config.JWT.Secret = "changeme"
		if err := validateConfig(config); err == nil {
			t.Error("Expected error for placeholder JWT secret in production")
		}

		config.JWT.Secret = "a-real-secret"
		config.Security.NonceSecret = ""
		if err := validateConfig(config); err == nil {
			t.Error("Expected error for missing nonce secret in production")
		}

		config.Security.NonceSecret = "a-nonce-secret"
		if err := validateConfig(config); err != nil {
			t.Errorf("validateConfig() error = %v", err)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		config := base()
		config.Logging.Level = "verbose"
		if err := validateConfig(config); err == nil {
			t.Error("Expected error for invalid log level")
		}
	})

	t.Run("unknown environment falls back to development", func(t *testing.T) {
		config := base()
		config.App.Environment = "staging"
		if err := validateConfig(config); err != nil {
			t.Errorf("validateConfig() error = %v", err)
		}
		if config.App.Environment != "development" {
			t.Errorf("Expected environment fallback, got %s", config.App.Environment)
		}
	})
}

func TestConnectionString(t *testing.T) {
	dbs := &DatabaseSettings{
		Host:     "localhost",
		Port:     3306,
		Name:     "localewatch",
		User:     "user",
		Password: "secret",
	}

	want := "user:secret@tcp(localhost:3306)/localewatch?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci"
	if got := dbs.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %s, want %s", got, want)
	}

	dbs.Password = ""
	want = "user@tcp(localhost:3306)/localewatch?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci"
	if got := dbs.ConnectionString(); got != want {
		t.Errorf("ConnectionString() without password = %s, want %s", got, want)
	}
}

func TestServerAddress(t *testing.T) {
	ss := &ServerSettings{Host: "0.0.0.0", Port: 8080}
	if got := ss.ServerAddress(); got != "0.0.0.0:8080" {
		t.Errorf("ServerAddress() = %s", got)
	}
}

func TestEnvironmentChecks(t *testing.T) {
	as := &AppSettings{Environment: "Production"}
	if !as.IsProduction() {
		t.Error("Expected IsProduction() to be case-insensitive")
	}
	if as.IsDevelopment() || as.IsTesting() {
		t.Error("Expected other environment checks to be false")
	}
}
