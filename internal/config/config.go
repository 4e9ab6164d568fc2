package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. DMGCALC_WORKERS.
const EnvPrefix = "DMGCALC_"

// Calculator holds all configuration for the damage calculator.
type Calculator struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// TablesPath points to a YAML table set; empty means the embedded tables.
	TablesPath string `yaml:"tables_path" env:"TABLES_PATH"`

	// Workers bounds concurrent per-character analyses (0 = GOMAXPROCS).
	Workers int `yaml:"workers" env:"WORKERS"`

	Cache    CacheConfig    `yaml:"cache" envPrefix:"CACHE_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
	Defaults DefaultsConfig `yaml:"defaults" envPrefix:"DEFAULT_"`
}

// CacheConfig controls damage memoization.
type CacheConfig struct {
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	Size    int  `yaml:"size" env:"SIZE"`
	// Persistent adds a PostgreSQL tier behind the in-memory LRU.
	Persistent bool `yaml:"persistent" env:"PERSISTENT"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultsConfig fills request fields the caller leaves at zero.
type DefaultsConfig struct {
	CharacterLevel  int     `yaml:"character_level" env:"CHARACTER_LEVEL"`
	TalentLevel     int     `yaml:"talent_level" env:"TALENT_LEVEL"`
	EnemyLevel      int     `yaml:"enemy_level" env:"ENEMY_LEVEL"`
	EnemyResistance float64 `yaml:"enemy_resistance" env:"ENEMY_RESISTANCE"` // percent
}

// Validate rejects values the engine cannot start with.
func (c Calculator) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	case c.Cache.Enabled && c.Cache.Size <= 0:
		return fmt.Errorf("cache size must be positive, got %d", c.Cache.Size)
	case c.Cache.Persistent && !c.Cache.Enabled:
		return fmt.Errorf("persistent cache requires cache.enabled")
	case c.Defaults.CharacterLevel < 1, c.Defaults.TalentLevel < 1, c.Defaults.EnemyLevel < 1:
		return fmt.Errorf("default levels must be >= 1")
	case c.Defaults.EnemyResistance < -100 || c.Defaults.EnemyResistance > 100:
		return fmt.Errorf("default enemy resistance %v out of [-100, 100]", c.Defaults.EnemyResistance)
	}
	return nil
}

// DefaultCalculator returns Calculator config with sensible defaults.
func DefaultCalculator() Calculator {
	return Calculator{
		LogLevel: "info",
		Cache: CacheConfig{
			Enabled: true,
			Size:    4096,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "dmgcalc",
			Password: "dmgcalc",
			DBName:   "dmgcalc",
			SSLMode:  "disable",
		},
		Defaults: DefaultsConfig{
			CharacterLevel:  90,
			TalentLevel:     9,
			EnemyLevel:      90,
			EnemyResistance: 10,
		},
	}
}

// LoadCalculator loads calculator config from a YAML file, then applies
// DMGCALC_* environment overrides. If the file doesn't exist, defaults are used.
func LoadCalculator(path string) (Calculator, error) {
	cfg := DefaultCalculator()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
