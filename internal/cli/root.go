// Package cli implements the command-line interface for cubie.
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubie/internal/config"
	"github.com/SeamusWaldron/cubie/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	cfgFile  string
	dbPath   string
	logLevel string

	// cfg is loaded by PersistentPreRunE before any command runs.
	cfg    *config.Config
	logger = logrus.New()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubie",
	Short: "Rubik's Cube state engine",
	Long: `cubie - A cubie-level Rubik's Cube simulator.

Apply move sequences, turn a cube interactively in the terminal, save
sessions to a local database and replay them against their final snapshot.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.cubie/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubie/cubie.db)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, args []string) error {
	dir, err := config.DefaultDir()
	if err != nil && cfgFile == "" {
		return err
	}

	c, err := config.Load(dir, cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dbPath != "" {
		c.DBPath = dbPath
	}
	if logLevel != "" {
		if _, err := logrus.ParseLevel(logLevel); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		c.LogLevel = logLevel
	}

	cfg = c
	logger = c.Logger()
	logger.WithFields(logrus.Fields{
		"config":  c.File,
		"db":      c.DBPath,
		"command": cmd.Name(),
	}).Debug("loaded config")

	return nil
}

// getDBPath returns the database path from flag, config or default.
func getDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	if dbPath != "" {
		return dbPath, nil
	}
	return storage.DefaultDBPath()
}

// openDB opens the database and applies pending migrations.
func openDB() (*storage.DB, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	db.SetLogger(logger)

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
