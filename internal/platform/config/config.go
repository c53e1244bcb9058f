package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Store identifica el adapter de persistencia a usar.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port   string `toml:"port"`
	Origin string `toml:"origin"` // host público, ej http://localhost:4000

	Store      string `toml:"store"` // memory | sqlite | postgres
	DBDSN      string `toml:"db_dsn"`
	SQLitePath string `toml:"sqlite_path"`

	StaticDir string `toml:"static_dir"`

	Dev bool `toml:"dev"` // habilita live reload

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	AppName   string `toml:"app_name"`
}

func defaults() Config {
	return Config{
		Port:       "4000",
		Store:      StoreMemory,
		SQLitePath: "dogs.db",
		StaticDir:  "web/static",
		LogLevel:   "info",
		LogFormat:  "text",
		AppName:    "dog-registry",
	}
}

// Load arma la config: defaults, luego archivo TOML (si path no es vacío),
// luego overrides por variables de entorno.
func Load(path string) (Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.Origin == "" {
		cfg.Origin = "http://localhost:" + cfg.Port
	}

	switch cfg.Store {
	case StoreMemory, StoreSQLite, StorePostgres:
	default:
		return Config{}, fmt.Errorf("config: unknown store %q", cfg.Store)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfPresent := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	setIfPresent(&cfg.Port, "PORT")
	setIfPresent(&cfg.Origin, "ORIGIN")
	setIfPresent(&cfg.Store, "STORE")
	setIfPresent(&cfg.DBDSN, "DB_DSN")
	setIfPresent(&cfg.SQLitePath, "SQLITE_PATH")
	setIfPresent(&cfg.StaticDir, "STATIC_DIR")
	setIfPresent(&cfg.LogLevel, "LOG_LEVEL")
	setIfPresent(&cfg.LogFormat, "LOG_FORMAT")
	setIfPresent(&cfg.AppName, "APP_NAME")

	if v, ok := os.LookupEnv("DEV"); ok {
		cfg.Dev = v == "1" || strings.EqualFold(v, "true")
	}
}
