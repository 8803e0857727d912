package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the media wall.
type Config struct {
	// Catalog backend connection
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`

	// Viewer grid behavior
	Wall WallConfig `yaml:"wall" json:"wall"`

	// Bulk download settings
	Download DownloadConfig `yaml:"download" json:"download"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// CatalogConfig holds the metadata backend connection settings.
type CatalogConfig struct {
	BaseURL    string        `yaml:"base_url" json:"base_url"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout"`
	MaxRetries int           `yaml:"max_retries" json:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay"`
}

// WallConfig holds the grid viewer settings.
type WallConfig struct {
	ColumnWidth          float64 `yaml:"column_width" json:"column_width"`
	Gutter               float64 `yaml:"gutter" json:"gutter"`
	Autoplay             bool    `yaml:"autoplay" json:"autoplay"`
	Muted                bool    `yaml:"muted" json:"muted"`
	AutoScrollEnabled    bool    `yaml:"auto_scroll_enabled" json:"auto_scroll_enabled"`
	ScrollSpeed          float64 `yaml:"scroll_speed" json:"scroll_speed"`
	OverscanMultiplier   float64 `yaml:"overscan_multiplier" json:"overscan_multiplier"`
	LoadMarginMultiplier float64 `yaml:"load_margin_multiplier" json:"load_margin_multiplier"`
	PlayRatioThreshold   float64 `yaml:"play_ratio_threshold" json:"play_ratio_threshold"`
	ShuffleOnStart       bool    `yaml:"shuffle_on_start" json:"shuffle_on_start"`
}

// DownloadConfig holds bulk-download settings.
type DownloadConfig struct {
	OutputDirectory     string        `yaml:"output_directory" json:"output_directory"`
	ConcurrentDownloads int           `yaml:"concurrent_downloads" json:"concurrent_downloads"`
	DownloadTimeout     time.Duration `yaml:"download_timeout" json:"download_timeout"`
	RequestsPerMinute   int           `yaml:"requests_per_minute" json:"requests_per_minute"`
	SkipVideos          bool          `yaml:"skip_videos" json:"skip_videos"`
	SkipImages          bool          `yaml:"skip_images" json:"skip_images"`
	OverwriteExisting   bool          `yaml:"overwrite_existing" json:"overwrite_existing"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:    "http://localhost:8000",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
		},
		Wall: WallConfig{
			ColumnWidth:          24,
			Gutter:               0,
			Autoplay:             true,
			Muted:                true,
			AutoScrollEnabled:    false,
			ScrollSpeed:          1,
			OverscanMultiplier:   1.0,
			LoadMarginMultiplier: 0.5,
			PlayRatioThreshold:   0.10,
			ShuffleOnStart:       false,
		},
		Download: DownloadConfig{
			OutputDirectory:     "./downloads",
			ConcurrentDownloads: 3,
			DownloadTimeout:     30 * time.Second,
			RequestsPerMinute:   60,
			SkipVideos:          false,
			SkipImages:          false,
			OverwriteExisting:   false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("MEDIAWALL_CATALOG_URL"); baseURL != "" {
		c.Catalog.BaseURL = baseURL
	}
	if colWidth := os.Getenv("MEDIAWALL_COLUMN_WIDTH"); colWidth != "" {
		if v, err := strconv.ParseFloat(colWidth, 64); err == nil && v > 0 {
			c.Wall.ColumnWidth = v
		}
	}
	if autoplay := os.Getenv("MEDIAWALL_AUTOPLAY"); autoplay != "" {
		c.Wall.Autoplay = strings.ToLower(autoplay) == "true"
	}
	if autoScroll := os.Getenv("MEDIAWALL_AUTO_SCROLL"); autoScroll != "" {
		c.Wall.AutoScrollEnabled = strings.ToLower(autoScroll) == "true"
	}
	if speed := os.Getenv("MEDIAWALL_SCROLL_SPEED"); speed != "" {
		if v, err := strconv.ParseFloat(speed, 64); err == nil && v > 0 {
			c.Wall.ScrollSpeed = v
		}
	}
	if outputDir := os.Getenv("MEDIAWALL_OUTPUT_DIR"); outputDir != "" {
		c.Download.OutputDirectory = outputDir
	}
	if concurrent := os.Getenv("MEDIAWALL_CONCURRENT_DOWNLOADS"); concurrent != "" {
		if v, err := strconv.Atoi(concurrent); err == nil && v > 0 {
			c.Download.ConcurrentDownloads = v
		}
	}
	if logLevel := os.Getenv("MEDIAWALL_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("MEDIAWALL_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations.
func (c *Config) findConfigFile() string {
	locations := []string{
		".mediawall.yaml",
		".mediawall.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "mediawall", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "mediawall", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".mediawall.yaml"),
		filepath.Join(os.Getenv("HOME"), ".mediawall.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Catalog.BaseURL == "" {
		errs = append(errs, errors.New("catalog base URL is required"))
	}
	if c.Catalog.Timeout <= 0 {
		errs = append(errs, errors.New("catalog timeout must be positive"))
	}
	if c.Catalog.MaxRetries < 0 {
		errs = append(errs, errors.New("catalog max retries cannot be negative"))
	}

	if c.Wall.ColumnWidth <= 0 {
		errs = append(errs, errors.New("column width must be positive"))
	}
	if c.Wall.Gutter < 0 {
		errs = append(errs, errors.New("gutter cannot be negative"))
	}
	if c.Wall.ScrollSpeed <= 0 {
		errs = append(errs, errors.New("scroll speed must be positive"))
	}
	if c.Wall.OverscanMultiplier < 0 {
		errs = append(errs, errors.New("overscan multiplier cannot be negative"))
	}
	if c.Wall.LoadMarginMultiplier < 0 {
		errs = append(errs, errors.New("load margin multiplier cannot be negative"))
	}
	if c.Wall.PlayRatioThreshold < 0 || c.Wall.PlayRatioThreshold > 1 {
		errs = append(errs, errors.New("play ratio threshold must be between 0 and 1"))
	}

	if c.Download.OutputDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Download.ConcurrentDownloads <= 0 {
		errs = append(errs, errors.New("concurrent downloads must be positive"))
	}
	if c.Download.ConcurrentDownloads > 10 {
		errs = append(errs, errors.New("concurrent downloads should not exceed 10"))
	}
	if c.Download.DownloadTimeout <= 0 {
		errs = append(errs, errors.New("download timeout must be positive"))
	}
	if c.Download.RequestsPerMinute <= 0 {
		errs = append(errs, errors.New("requests per minute must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if baseURL, ok := flags["catalog-url"].(string); ok && baseURL != "" {
		c.Catalog.BaseURL = baseURL
	}
	if colWidth, ok := flags["column-width"].(float64); ok && colWidth > 0 {
		c.Wall.ColumnWidth = colWidth
	}
	if autoplay, ok := flags["autoplay"].(bool); ok {
		c.Wall.Autoplay = autoplay
	}
	if autoScroll, ok := flags["auto-scroll"].(bool); ok {
		c.Wall.AutoScrollEnabled = autoScroll
	}
	if shuffle, ok := flags["shuffle"].(bool); ok {
		c.Wall.ShuffleOnStart = shuffle
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Download.OutputDirectory = outputDir
	}
	if concurrent, ok := flags["concurrent"].(int); ok && concurrent > 0 {
		c.Download.ConcurrentDownloads = concurrent
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".mediawall.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
