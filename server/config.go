package server

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default limits applied when the config file leaves them unset.
const (
	defaultAddr           = ":8080"
	defaultMaxUploadBytes = 20 * 1024 * 1024
	defaultOCRTimeoutSecs = 30
)

// Config holds the service configuration, loaded from a YAML file.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// MaxUploadBytes caps the size of an uploaded image.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// MaxDimension, when positive, downscales rectified output so its
	// longer side is at most this many pixels.
	MaxDimension int `yaml:"max_dimension"`

	OCR OCRConfig `yaml:"ocr"`
}

// OCRConfig selects and configures the recognition backend.
type OCRConfig struct {
	// Backend is one of "none", "tesseract", or "remote".
	Backend string `yaml:"backend"`

	// Language is the recognition language passed to the local engine,
	// e.g. "eng" or "eng+kor".
	Language string `yaml:"language"`

	// RemoteURL and RemoteSecret configure the remote backend.
	RemoteURL    string `yaml:"remote_url"`
	RemoteSecret string `yaml:"remote_secret"`

	// TimeoutSeconds bounds a single recognition call.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// LoadConfig reads and validates a YAML config file, applying defaults for
// unset fields.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns a config with all defaults applied and no OCR
// backend.
func DefaultConfig() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = defaultMaxUploadBytes
	}
	if c.OCR.Backend == "" {
		c.OCR.Backend = "none"
	}
	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}
	if c.OCR.TimeoutSeconds <= 0 {
		c.OCR.TimeoutSeconds = defaultOCRTimeoutSecs
	}
}

func (c *Config) validate() error {
	switch c.OCR.Backend {
	case "none", "tesseract", "remote":
	default:
		return fmt.Errorf("unknown ocr backend %q (want none, tesseract, or remote)", c.OCR.Backend)
	}
	if c.OCR.Backend == "remote" && c.OCR.RemoteURL == "" {
		return fmt.Errorf("ocr backend %q requires remote_url", c.OCR.Backend)
	}
	return nil
}
