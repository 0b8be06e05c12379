package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/atstracker/ats-tracking/internal/config"
	"github.com/atstracker/ats-tracking/internal/store"
	"github.com/atstracker/ats-tracking/pkg/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"
)

var legalDatabaseTypes = []string{config.PostgresType, config.SqliteType}

type GlobalOptions struct {
	DatabaseType string
	DatabasePath string
	LogLevel     string
	EnvFile      string

	out io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		EnvFile: ".env",
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.DatabaseType, "db-type", o.DatabaseType, fmt.Sprintf("Database backend, overrides DB_TYPE. One of: (%s).", strings.Join(legalDatabaseTypes, ", ")))
	fs.StringVar(&o.DatabasePath, "db-path", o.DatabasePath, "Path of the sqlite database file, overrides DB_PATH.")
	fs.StringVar(&o.LogLevel, "log-level", o.LogLevel, "Log level, overrides ATS_LOG_LEVEL.")
	fs.StringVar(&o.EnvFile, "env-file", o.EnvFile, "File of KEY=value lines read into the environment before the configuration. Ignored when missing.")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()

	if err := config.LoadEnvFile(o.EnvFile); err != nil {
		return err
	}

	level := o.LogLevel
	if level == "" {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		level = cfg.Service.LogLevel
	}
	zap.ReplaceGlobals(log.InitLog(log.ParseLevel(level)))
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.DatabaseType != "" && !funk.ContainsString(legalDatabaseTypes, o.DatabaseType) {
		return fmt.Errorf("database type must be one of %s", strings.Join(legalDatabaseTypes, ", "))
	}
	return nil
}

// Config returns the environment configuration with the command line overrides applied.
func (o *GlobalOptions) Config() (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	db := *cfg.Database
	if o.DatabaseType != "" {
		db.Type = o.DatabaseType
	}
	if o.DatabasePath != "" {
		db.Path = o.DatabasePath
	}
	return &config.Config{Database: &db, Service: cfg.Service}, nil
}

func (o *GlobalOptions) Store() (store.Store, error) {
	cfg, err := o.Config()
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Database.Type, err)
	}
	return store.NewStore(db), nil
}
