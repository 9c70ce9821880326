package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"thememgr/internal/models"
)

// Config holds the application configuration
type Config struct {
	StorageRoot    string `yaml:"storage_root"`    // volume mount point holding animation_packs/
	MaxThemes      int    `yaml:"max_themes"`      // catalog capacity per scan
	RestartCommand string `yaml:"restart_command"` // optional command run when a reboot is accepted
	Debug          bool   `yaml:"debug"`           // verbose engine logging
	FirstRun       bool   `yaml:"-"`               // Is this the first run?
}

// configFileName is the name of the config file
const configFileName = "config.yaml"

// Template is the commented starter config printed by `config generate`.
const Template = `# thememgr configuration

# Volume mount point that holds animation_packs/ and dolphin/.
storage_root: .

# How many themes one scan collects before stopping.
max_themes: 64

# Optional command run through "sh -c" after a theme change is
# confirmed with a restart. Leave empty to skip.
restart_command: ""

# Verbose engine logging to stderr.
debug: false
`

// Default returns the default configuration
func Default() *Config {
	return &Config{
		StorageRoot: ".",
		MaxThemes:   models.DefaultMaxThemes,
		FirstRun:    true,
	}
}

// ConfigDir returns the directory containing thememgr config files
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "thememgr")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// JournalPath returns the path to the operation journal database
func JournalPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "state", "thememgr", "journal.db")
}

// Load loads the configuration from the default location
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific file. A missing file
// is the first run and yields the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.normalize()
	return &cfg, nil
}

// normalize fills gaps a hand-edited file may leave
func (c *Config) normalize() {
	if c.StorageRoot == "" {
		c.StorageRoot = "."
	}
	if c.MaxThemes < 1 {
		c.MaxThemes = models.DefaultMaxThemes
	}
}

// Save saves the configuration to the default location
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo saves the configuration to a specific file
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
