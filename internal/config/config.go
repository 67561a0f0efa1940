package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL         = "http://localhost:5000"
	DefaultTimeoutSec      = 30
	DefaultPollIntervalSec = 30

	// BaseURLEnv overrides the active profile's backend for one run
	BaseURLEnv = "GLASSDASH_BASE_URL"
	homeEnv    = "GLASSDASH_HOME"
	dirName    = ".glassdash"
)

type Profile struct {
	BaseURL         string `yaml:"base_url"`
	TimeoutSec      int    `yaml:"timeout_sec,omitempty"`
	PollIntervalSec int    `yaml:"poll_interval_sec,omitempty"`
}

type Config struct {
	Profiles       map[string]Profile `yaml:"profiles"`
	ActiveProfile  string             `yaml:"active_profile"`
	currentProfile *Profile
}

func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// Load existing config or create default
	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Validate and set current profile
	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// ValidateBaseURL accepts absolute http(s) URLs only
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

func (c *Config) IsValid() bool {
	return c.currentProfile != nil && ValidateBaseURL(c.currentProfile.BaseURL) == nil
}

func (c *Config) GetCurrentProfileName() string {
	return c.ActiveProfile
}

func (c *Config) GetBaseURL() string {
	if c.currentProfile == nil || c.currentProfile.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.currentProfile.BaseURL
}

// SetBaseURL overrides the backend for this run without touching the profile on disk
func (c *Config) SetBaseURL(baseURL string) {
	if c.currentProfile == nil {
		c.currentProfile = &Profile{}
	}
	c.currentProfile.BaseURL = baseURL
}

func (c *Config) GetTimeout() time.Duration {
	if c.currentProfile == nil || c.currentProfile.TimeoutSec <= 0 {
		return DefaultTimeoutSec * time.Second
	}
	return time.Duration(c.currentProfile.TimeoutSec) * time.Second
}

func (c *Config) GetPollInterval() time.Duration {
	if c.currentProfile == nil || c.currentProfile.PollIntervalSec <= 0 {
		return DefaultPollIntervalSec * time.Second
	}
	return time.Duration(c.currentProfile.PollIntervalSec) * time.Second
}

// Dir is where the config file and the log live
func Dir() (string, error) {
	// Use GLASSDASH_HOME if set, otherwise use user's home directory
	if home := os.Getenv(homeEnv); home != "" {
		return filepath.Join(home, dirName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, dirName), nil
}

// LogPath is the default log file location
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "glassdash.log"), nil
}

func getConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	// If config file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": {
				BaseURL:         DefaultBaseURL,
				TimeoutSec:      DefaultTimeoutSec,
				PollIntervalSec: DefaultPollIntervalSec,
			},
		},
		ActiveProfile: "default",
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

// Use makes name the active profile. The caller saves.
func (c *Config) Use(name string) error {
	profile, exists := c.Profiles[name]
	if !exists {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	c.currentProfile = &profile
	return nil
}

// ApplyEnv applies GLASSDASH_BASE_URL, if set, to the current profile only
func (c *Config) ApplyEnv() {
	if baseURL := os.Getenv(BaseURLEnv); baseURL != "" {
		c.SetBaseURL(baseURL)
	}
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	// A copy, so run-time overrides never end up in the saved file
	c.currentProfile = &profile
	return nil
}
