// Package config loads cubie settings from ~/.cubie/config.yaml using Viper.
// Command-line flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/SeamusWaldron/cubie"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	KeyDBPath   = "db_path"
	KeyLogLevel = "log_level"
	keyPalette  = "palette"

	defaultLogLevel = "warn"
)

// defaultPalette maps each face to the terminal color of its stickers.
var defaultPalette = map[cubie.Face]string{
	cubie.FaceU: "#FF8C00",
	cubie.FaceR: "#1E5BFF",
	cubie.FaceF: "#FFFFFF",
	cubie.FaceD: "#D7263D",
	cubie.FaceL: "#2BB34A",
	cubie.FaceB: "#FFD500",
}

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# cubie configuration

# SQLite database for saved sessions (optional; overridable by --db)
# db_path: ~/.cubie/cubie.db

# One of: trace, debug, info, warn, error
log_level: warn

# Sticker colors used by "cubie play", keyed by face
palette:
  u: "#FF8C00"
  r: "#1E5BFF"
  f: "#FFFFFF"
  d: "#D7263D"
  l: "#2BB34A"
  b: "#FFD500"
`

// DefaultPalette returns the built-in sticker colors indexed by face.
func DefaultPalette() [cubie.NumFaces]string {
	var p [cubie.NumFaces]string
	for f, c := range defaultPalette {
		p[f] = c
	}
	return p
}

// Config is the resolved configuration.
type Config struct {
	DBPath   string
	LogLevel string
	Palette  [cubie.NumFaces]string

	// File is the config file that was read, empty if none was found.
	File string
}

// DefaultDir returns ~/.cubie.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubie"), nil
}

// Load reads configuration. If file is empty, config.yaml is read from dir,
// which is created with a default config.yaml on first run. A missing
// config file is not an error.
func Load(dir, file string) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	for f, c := range defaultPalette {
		v.SetDefault(paletteKey(f), c)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if err := ensureConfigDir(dir); err != nil {
			return nil, fmt.Errorf("ensure config dir: %w", err)
		}
		if err := ensureDefaultConfigFile(dir); err != nil {
			return nil, fmt.Errorf("ensure default config: %w", err)
		}
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		DBPath:   expandHome(v.GetString(KeyDBPath)),
		LogLevel: v.GetString(KeyLogLevel),
		File:     v.ConfigFileUsed(),
	}
	for f := cubie.Face(0); f < cubie.NumFaces; f++ {
		cfg.Palette[f] = v.GetString(paletteKey(f))
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyLogLevel, err)
	}

	return cfg, nil
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if level, err := logrus.ParseLevel(c.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

func paletteKey(f cubie.Face) string {
	return keyPalette + "." + strings.ToLower(f.String())
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
