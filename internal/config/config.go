package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Server     Server     `yaml:"server"`
	Generation Generation `yaml:"generation"`
	Sources    Sources    `yaml:"sources"`
	Templates  Templates  `yaml:"templates"`
	Validation Validation `yaml:"validation"`
	FactCheck  FactCheck  `yaml:"factcheck"`
	Output     Output     `yaml:"output"`
	Logging    Logging    `yaml:"logging"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Generation struct {
	BaseURL        string `yaml:"base_url"`
	NewsletterPath string `yaml:"newsletter_path"`
	InternalPath   string `yaml:"internal_path"`
}

type Sources struct {
	Feeds []Feed `yaml:"feeds"`
}

type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Templates struct {
	// Dir holds additional template definitions in YAML, loaded on top of
	// the built-in set.
	Dir string `yaml:"dir"`
}

type Validation struct {
	MinContentLength int `yaml:"min_content_length"`
	DebounceMS       int `yaml:"debounce_ms"`
}

type FactCheck struct {
	Seed        int64 `yaml:"seed"`
	DelayMS     int   `yaml:"delay_ms"`
	CacheTTLMin int   `yaml:"cache_ttl_minutes"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Logging struct {
	Level string `yaml:"level"`
}

// ConfigDir returns the XDG config directory for taxletter.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "taxletter")
}

// DataDir returns the XDG data directory for taxletter.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "taxletter")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/taxletter/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'taxletter init' to create a default config",
		xdgConfig,
	)
}

// Load reads and parses a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return parse(data)
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Server: Server{Port: 8080},
		Generation: Generation{
			BaseURL:        "http://localhost:3000",
			NewsletterPath: "/generate-newsletter",
			InternalPath:   "/generate-internal",
		},
		Validation: Validation{
			MinContentLength: 100,
			DebounceMS:       1000,
		},
		FactCheck: FactCheck{
			DelayMS:     1500,
			CacheTTLMin: 30,
		},
		Logging: Logging{Level: "INFO"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

// DatabasePath returns the draft database location under the data directory.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.GetDataDir(), "taxletter.db")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
