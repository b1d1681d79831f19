package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/eleven-am/listkeeper/internal/seed"
	"gopkg.in/yaml.v3"
)

// Config represents the listkeeper.yaml configuration structure
type Config struct {
	Environment string `yaml:"environment"`

	Database struct {
		URL             string        `yaml:"url"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	} `yaml:"database"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Security struct {
		BcryptCost int `yaml:"bcrypt_cost"`
	} `yaml:"security"`

	Seed struct {
		DemoUserEmail string `yaml:"demo_user_email"`
		ListItemLimit int    `yaml:"list_item_limit"`
		RandomSeed    int64  `yaml:"random_seed"`
		Fixtures      string `yaml:"fixtures"`
	} `yaml:"seed"`
}

var configLocations = []string{"listkeeper.yaml", "listkeeper.yml", ".listkeeper.yaml"}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{Environment: "dev"}
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = 30 * time.Minute
	cfg.Log.Level = "warn"
	cfg.Log.Format = "console"
	cfg.Security.BcryptCost = 10
	cfg.Seed.ListItemLimit = seed.DefaultListItemLimit
	cfg.Seed.RandomSeed = seed.DefaultRandomSeed
	return cfg
}

// LoadConfig reads path, or the first config file found, over the defaults
// and then applies environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = GetConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func GetConfigPath() string {
	if path := os.Getenv("LISTKEEPER_CONFIG"); path != "" {
		return path
	}

	for _, loc := range configLocations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("STATE"); ok && v != "" {
		c.Environment = v
	}
	if v, ok := lookup("DATABASE_URL"); ok && v != "" {
		c.Database.URL = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Log.Level = v
	}
}

// IsProduction reports whether the environment is "prod" or "production".
func (c *Config) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "prod", "production":
		return true
	}
	return false
}

// SeedConfig turns the seed section into orchestrator settings, loading a
// fixture file when one is configured.
func (c *Config) SeedConfig() (seed.Config, error) {
	cfg := seed.Config{
		Production:    c.IsProduction(),
		DemoUserEmail: c.Seed.DemoUserEmail,
		ListItemLimit: c.Seed.ListItemLimit,
		RandomSeed:    c.Seed.RandomSeed,
	}

	if c.Seed.Fixtures != "" {
		fixtures, err := seed.LoadFixtures(c.Seed.Fixtures)
		if err != nil {
			return seed.Config{}, err
		}
		cfg.Fixtures = fixtures
	}

	return cfg, nil
}
