package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	PostgresType = "pgsql"
	SqliteType   = "sqlite"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"ats"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
	// Path of the sqlite file. Empty means ~/ats-tracking.db3.
	Path string `envconfig:"DB_PATH" default:""`
}

type svcConfig struct {
	LogLevel string `envconfig:"ATS_LOG_LEVEL" default:"warn"`
}

// LoadEnvFile exports the variables of a .env file that are not already set.
// A missing file is not an error. It must run before the first call to New.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// New reads the configuration from the environment once and caches it.
func New() (*Config, error) {
	if singleConfig == nil {
		cfg := new(Config)
		if err := envconfig.Process("", cfg); err != nil {
			return nil, err
		}
		singleConfig = cfg
	}
	return singleConfig, nil
}

// NewDefault returns the configuration made of default values only.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type:     SqliteType,
			Hostname: "localhost",
			Port:     "5432",
			Name:     "ats",
			User:     "admin",
			Password: "adminpass",
		},
		Service: &svcConfig{
			LogLevel: "warn",
		},
	}
}
