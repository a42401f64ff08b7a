package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the veridoc pipeline configuration.
type Config struct {
	Extraction ExtractionConfig `yaml:"extraction"`
	OCR        OCRConfig        `yaml:"ocr"`
	Checker    CheckerConfig    `yaml:"checker"`
	Validation ValidationConfig `yaml:"validation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// ExtractionConfig holds text extraction settings.
type ExtractionConfig struct {
	// MinTextLength is the number of characters below which a native
	// extraction is considered insufficient and escalated to OCR.
	MinTextLength int `yaml:"min_text_length"`
}

// OCRConfig holds OCR backend settings.
type OCRConfig struct {
	Languages       []string `yaml:"languages"` // Tesseract language codes (default: fra, eng)
	DPI             int      `yaml:"dpi"`
	ConfidenceFloor float64  `yaml:"confidence_floor"` // word confidence in [0,100] below which words are dropped
	LineGap         float64  `yaml:"line_gap"`         // vertical distance grouping words into a line
}

// CheckerConfig holds fact checker settings.
type CheckerConfig struct {
	TokenOverlapThreshold float64 `yaml:"token_overlap_threshold"`
	MinTokenLength        int     `yaml:"min_token_length"`
}

// ValidationConfig holds cross-validation gate settings.
type ValidationConfig struct {
	TargetAccuracy       float64 `yaml:"target_accuracy"`         // required fact accuracy in (0,1]
	MaxCitationErrorRate float64 `yaml:"max_citation_error_rate"` // tolerated citation error rate in (0,1]
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse parses YAML configuration bytes, substituting ${VAR} references,
// applying defaults and validating the result.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Default returns the configuration with every field at its default.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Extraction.MinTextLength <= 0 {
		c.Extraction.MinTextLength = 100
	}
	if len(c.OCR.Languages) == 0 {
		c.OCR.Languages = []string{"fra", "eng"}
	}
	if c.OCR.DPI <= 0 {
		c.OCR.DPI = 300
	}
	if c.OCR.ConfidenceFloor <= 0 {
		c.OCR.ConfidenceFloor = 30
	}
	if c.OCR.LineGap <= 0 {
		c.OCR.LineGap = 10
	}
	if c.Checker.TokenOverlapThreshold <= 0 {
		c.Checker.TokenOverlapThreshold = 0.7
	}
	if c.Checker.MinTokenLength <= 0 {
		c.Checker.MinTokenLength = 3
	}
	if c.Validation.TargetAccuracy <= 0 {
		c.Validation.TargetAccuracy = 0.95
	}
	if c.Validation.MaxCitationErrorRate <= 0 {
		c.Validation.MaxCitationErrorRate = 0.01
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.OCR.DPI < 72 || c.OCR.DPI > 1200 {
		return fmt.Errorf("ocr.dpi must be between 72 and 1200, got %d", c.OCR.DPI)
	}
	if c.OCR.ConfidenceFloor > 100 {
		return fmt.Errorf("ocr.confidence_floor must be at most 100, got %g", c.OCR.ConfidenceFloor)
	}
	for _, lang := range c.OCR.Languages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("ocr.languages must not contain empty entries")
		}
	}
	if c.Checker.TokenOverlapThreshold > 1 {
		return fmt.Errorf("checker.token_overlap_threshold must be in (0,1], got %g", c.Checker.TokenOverlapThreshold)
	}
	if c.Validation.TargetAccuracy > 1 {
		return fmt.Errorf("validation.target_accuracy must be in (0,1], got %g", c.Validation.TargetAccuracy)
	}
	if c.Validation.MaxCitationErrorRate > 1 {
		return fmt.Errorf("validation.max_citation_error_rate must be in (0,1], got %g", c.Validation.MaxCitationErrorRate)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(b)) // config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
