package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/smartcare/internal/platform"
	"gopkg.in/yaml.v3"
)

// Config represents the Smart Care configuration
type Config struct {
	Domains          Domains    `yaml:"domains"`
	Categories       Categories `yaml:"categories"`
	Concurrency      int        `yaml:"concurrency"`        // category job ceiling
	DownloadsAgeDays int        `yaml:"downloads_age_days"` // old/recent split
	UnusedAppDays    int        `yaml:"unused_app_days"`
	LargeAppMinSize  string     `yaml:"large_app_min_size"`
	IncludeDotfiles  bool       `yaml:"include_dotfiles"`
	ExcludePatterns  []string   `yaml:"exclude_patterns"`
	Verbose          bool       `yaml:"verbose"`
}

// Domains controls which scan domains run
type Domains struct {
	Cleanup      bool `yaml:"cleanup"`
	Performance  bool `yaml:"performance"`
	Applications bool `yaml:"applications"`
}

// Categories controls which cleanup categories are scanned
type Categories struct {
	SystemCache  bool `yaml:"system_cache"`
	UserCache    bool `yaml:"user_cache"`
	Temp         bool `yaml:"temp"`
	Logs         bool `yaml:"logs"`
	BrowserCache bool `yaml:"browser_cache"`
	Trash        bool `yaml:"trash"`
	DevJunk      bool `yaml:"dev_junk"`
}

// Load loads configuration from a file, falling back to defaults when
// the file does not exist
func Load(path string) (*Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return GetDefault(), nil
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return GetDefault(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := GetDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks configuration values are usable
func (c *Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.DownloadsAgeDays < 0 {
		return fmt.Errorf("downloads_age_days cannot be negative, got %d", c.DownloadsAgeDays)
	}
	if c.UnusedAppDays < 0 {
		return fmt.Errorf("unused_app_days cannot be negative, got %d", c.UnusedAppDays)
	}
	return nil
}

// DefaultPath returns the default config file location
func DefaultPath() (string, error) {
	configDir, err := platform.GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "smartcare", "config.yaml"), nil
}
