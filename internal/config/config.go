// Package config gathers the site's settings from the environment and an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/caption"
)

// Config is the full runtime configuration of the site.
type Config struct {
	Port         string        `yaml:"port"`
	DatabasePath string        `yaml:"database_path"`
	MaxUploadMB  int           `yaml:"max_upload_mb"`
	SMTP         SMTPConfig    `yaml:"smtp"`
	Admin        AdminConfig   `yaml:"admin"`
	Caption      CaptionConfig `yaml:"caption"`
}

type SMTPConfig struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
	ToEmail string `yaml:"to_email"`
}

// Configured reports whether credentials are present.
func (s SMTPConfig) Configured() bool {
	return s.User != "" && s.Pass != ""
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// CaptionConfig tunes the caption tool.
type CaptionConfig struct {
	MaxWidth      int                 `yaml:"max_width"`
	MaxMegapixels int                 `yaml:"max_megapixels"`
	DebounceMS    int                 `yaml:"debounce_ms"`
	Defaults      caption.RawSettings `yaml:"defaults"`
}

// MaxPixels is the decode budget for uploaded images.
func (c CaptionConfig) MaxPixels() int64 {
	return int64(c.MaxMegapixels) * 1_000_000
}

// Debounce is the edit quiet period as a duration.
func (c CaptionConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Port:         "8080",
		DatabasePath: "portfolio.db",
		MaxUploadMB:  20,
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		Caption: CaptionConfig{
			MaxWidth:      caption.DefaultMaxWidth,
			MaxMegapixels: caption.DefaultMaxPixels / 1_000_000,
			DebounceMS:    int(caption.DefaultDebounce / time.Millisecond),
			Defaults: caption.RawSettings{
				BandHeight:  strconv.Itoa(caption.DefaultBandHeight),
				FontSize:    strconv.Itoa(caption.DefaultFontSize),
				FontColor:   caption.Hex(caption.White),
				StrokeColor: caption.Hex(caption.Black),
			},
		},
	}
}

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(m string) string {
		return os.Getenv(envVarPattern.FindStringSubmatch(m)[1])
	})
}

// Load builds the configuration: defaults, then the YAML file named by
// CAPTION_CONFIG (if any), then individual environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv("CAPTION_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.sanitize()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Port, "PORT")
	setString(&c.DatabasePath, "DATABASE_PATH")
	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.Port, "SMTP_PORT")
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Pass, "SMTP_PASS")
	setString(&c.SMTP.ToEmail, "TO_EMAIL")
	setString(&c.Admin.Username, "ADMIN_USERNAME")
	setString(&c.Admin.Password, "ADMIN_PASSWORD")
	setInt(&c.MaxUploadMB, "MAX_UPLOAD_MB")
	setInt(&c.Caption.MaxWidth, "CAPTION_MAX_WIDTH")
	setInt(&c.Caption.MaxMegapixels, "CAPTION_MAX_MEGAPIXELS")
	setInt(&c.Caption.DebounceMS, "CAPTION_DEBOUNCE_MS")
}

// sanitize puts back defaults for values a file or the environment zeroed.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Port == "" {
		c.Port = def.Port
	}
	if c.DatabasePath == "" {
		c.DatabasePath = def.DatabasePath
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = def.MaxUploadMB
	}
	if c.Caption.MaxWidth <= 0 {
		c.Caption.MaxWidth = def.Caption.MaxWidth
	}
	if c.Caption.MaxMegapixels <= 0 {
		c.Caption.MaxMegapixels = def.Caption.MaxMegapixels
	}
	if c.Caption.DebounceMS <= 0 {
		c.Caption.DebounceMS = def.Caption.DebounceMS
	}
}

// MaxUploadBytes is the request body limit for image uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		*dst = v
	}
}
