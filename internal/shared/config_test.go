package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}

		if config.Search.BaseURL != "https://itunes.apple.com/search" {
			t.Errorf("unexpected search base URL %s", config.Search.BaseURL)
		}

		if config.Search.Limit != 12 || config.Search.Entity != "song" {
			t.Errorf("expected entity=song limit=12, got entity=%s limit=%d", config.Search.Entity, config.Search.Limit)
		}

		if config.Search.DefaultTerm != "Tarkan" {
			t.Errorf("expected default term Tarkan, got %s", config.Search.DefaultTerm)
		}

		if config.Search.Timeout != 15*time.Second {
			t.Errorf("expected search timeout 15s, got %v", config.Search.Timeout)
		}

		if config.Store.Driver != DriverJSON || config.Store.Path != "favorites.json" {
			t.Errorf("expected json store at favorites.json, got %s at %s", config.Store.Driver, config.Store.Path)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Store.Path != DefaultConfig().Store.Path {
			t.Errorf("created config store path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "127.0.0.1"
port = 8080

[store]
driver = "sqlite"

[database]
path = "/custom/path.db"

[search]
limit = 25
timeout = "2s"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Addr() != "127.0.0.1:8080" {
			t.Errorf("expected addr 127.0.0.1:8080, got %s", config.Server.Addr())
		}
		if config.Store.Driver != DriverSQLite {
			t.Errorf("expected sqlite driver, got %s", config.Store.Driver)
		}
		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}
		if config.Search.Limit != 25 || config.Search.Timeout != 2*time.Second {
			t.Errorf("expected limit 25 timeout 2s, got %d %v", config.Search.Limit, config.Search.Timeout)
		}
		if config.Search.DefaultTerm != "Tarkan" {
			t.Errorf("keys absent from the file should keep defaults, got %q", config.Search.DefaultTerm)
		}
	})

	t.Run("LoadConfig Rejects Unknown Driver", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[store]\ndriver = \"redis\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrUnknownDriver) {
			t.Errorf("expected ErrUnknownDriver, got %v", err)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("ResolveConfig", func(t *testing.T) {
		t.Run("Missing File Uses Defaults", func(t *testing.T) {
			config, err := ResolveConfig(filepath.Join(t.TempDir(), "absent.toml"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if config.Server.Port != 5000 {
				t.Errorf("expected default port, got %d", config.Server.Port)
			}
		})

		t.Run("Environment Overrides", func(t *testing.T) {
			t.Setenv(EnvAddr, "localhost:9999")
			t.Setenv(EnvStorePath, "/tmp/favs.json")

			config, err := ResolveConfig("")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if config.Server.Host != "localhost" || config.Server.Port != 9999 {
				t.Errorf("expected localhost:9999, got %s", config.Server.Addr())
			}
			if config.Store.Path != "/tmp/favs.json" {
				t.Errorf("expected store path override, got %s", config.Store.Path)
			}
		})
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
			want   error
		}{
			{"json without path", func(c *Config) { c.Store.Path = "" }, ErrInvalidConfig},
			{"sqlite without database", func(c *Config) { c.Store.Driver = DriverSQLite; c.Database.Path = "" }, ErrInvalidConfig},
			{"empty base url", func(c *Config) { c.Search.BaseURL = "" }, ErrInvalidConfig},
			{"zero limit", func(c *Config) { c.Search.Limit = 0 }, ErrInvalidConfig},
			{"bad port", func(c *Config) { c.Server.Port = 70000 }, ErrInvalidConfig},
			{"memory driver", func(c *Config) { c.Store.Driver = DriverMemory; c.Store.Path = "" }, nil},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				err := config.Validate()
				if tt.want == nil && err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				if tt.want != nil && !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})
}
