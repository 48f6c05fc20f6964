// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/fastfolio/internal/llm"
)

// Supported model providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Defaults applied by MergeWithDefaults(Defaults())
const (
	DefaultPort              = 8000
	DefaultLaTeXCompiler     = "pdflatex"
	DefaultOCRBinary         = "tesseract"
	DefaultMaxUploadBytes    = 10 << 20
	DefaultExtractionWorkers = 4
	DefaultUploadDir         = "uploads"
)

// Config represents the service configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use environment variables or defaults.
type Config struct {
	// Server
	Port             int  `json:"port,omitempty" yaml:"port,omitempty"`
	RateLimitEnabled *bool `json:"rate_limit_enabled,omitempty" yaml:"rate_limit_enabled,omitempty"`

	// Model
	Provider     string `json:"provider,omitempty" yaml:"provider,omitempty"`             // gemini or openai
	Model        string `json:"model,omitempty" yaml:"model,omitempty"`                   // Provider model name override
	ModelTier    string `json:"model_tier,omitempty" yaml:"model_tier,omitempty"`         // lite, standard or advanced
	APIKey       string `json:"api_key,omitempty" yaml:"api_key,omitempty"`               // Gemini API key
	OpenAIAPIKey string `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"` // OpenAI API key

	// Toolchains
	ChromePath    string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	LaTeXCompiler string `json:"latex_compiler,omitempty" yaml:"latex_compiler,omitempty"`
	OCRBinary     string `json:"ocr_binary,omitempty" yaml:"ocr_binary,omitempty"`

	// Filesystem
	ScratchDir     string `json:"scratch_dir,omitempty" yaml:"scratch_dir,omitempty"` // Parent of per-render LaTeX scratch dirs
	UploadDir      string `json:"upload_dir,omitempty" yaml:"upload_dir,omitempty"`
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty" yaml:"max_upload_bytes,omitempty"`

	// Behavior
	ExtractionWorkers int  `json:"extraction_workers,omitempty" yaml:"extraction_workers,omitempty"`
	Verbose           bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration values
func Defaults() Config {
	enabled := true
	return Config{
		Port:              DefaultPort,
		RateLimitEnabled:  &enabled,
		Provider:          ProviderGemini,
		LaTeXCompiler:     DefaultLaTeXCompiler,
		OCRBinary:         DefaultOCRBinary,
		UploadDir:         DefaultUploadDir,
		MaxUploadBytes:    DefaultMaxUploadBytes,
		ExtractionWorkers: DefaultExtractionWorkers,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave fields empty.
func FromEnv() Config {
	cfg := Config{
		Provider:      strings.ToLower(os.Getenv("LLM_PROVIDER")),
		Model:         os.Getenv("LLM_MODEL"),
		ModelTier:     strings.ToLower(os.Getenv("LLM_MODEL_TIER")),
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		ChromePath:    os.Getenv("CHROME_PATH"),
		LaTeXCompiler: os.Getenv("LATEX_COMPILER"),
		ScratchDir:    os.Getenv("SCRATCH_DIR"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// A missing API key is not an error here: it surfaces per request.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unknown provider %q (want %s or %s)", c.Provider, ProviderGemini, ProviderOpenAI)
	}

	switch llm.ModelTier(c.ModelTier) {
	case "", llm.TierLite, llm.TierStandard, llm.TierAdvanced:
	default:
		return fmt.Errorf("config error: unknown model_tier %q (want %s, %s or %s)", c.ModelTier, llm.TierLite, llm.TierStandard, llm.TierAdvanced)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}
	if c.ExtractionWorkers < 0 {
		return fmt.Errorf("config error: 'extraction_workers' must be non-negative")
	}

	// A missing scratch dir is created when the pipeline is built
	if c.ScratchDir != "" {
		info, err := os.Stat(c.ScratchDir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("config error: scratch dir is not accessible: %s: %w", c.ScratchDir, err)
		case !info.IsDir():
			return fmt.Errorf("config error: scratch dir is not a directory: %s", c.ScratchDir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Called in order flags > file > env > Defaults().
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.ModelTier == "" {
		result.ModelTier = defaults.ModelTier
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LaTeXCompiler == "" {
		result.LaTeXCompiler = defaults.LaTeXCompiler
	}
	if result.OCRBinary == "" {
		result.OCRBinary = defaults.OCRBinary
	}
	if result.ScratchDir == "" {
		result.ScratchDir = defaults.ScratchDir
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxUploadBytes == 0 {
		result.MaxUploadBytes = defaults.MaxUploadBytes
	}
	if result.ExtractionWorkers == 0 {
		result.ExtractionWorkers = defaults.ExtractionWorkers
	}

	// Pointer bools distinguish unset from false
	if result.RateLimitEnabled == nil {
		result.RateLimitEnabled = defaults.RateLimitEnabled
	}

	// Verbose cannot distinguish unset from false, so either source enables it
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// Credential returns the API key for the configured provider, or "" if none is set
func (c *Config) Credential() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.APIKey
}

// RateLimitOn reports whether rate limiting is enabled (default true)
func (c *Config) RateLimitOn() bool {
	return c.RateLimitEnabled == nil || *c.RateLimitEnabled
}

// Resolve combines a file config (optional) with the environment and defaults.
func Resolve(path string) (Config, error) {
	var fileCfg Config
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		fileCfg = *loaded
	}

	env := FromEnv()
	withEnv := env.MergeWithDefaults(Defaults())
	merged := fileCfg.MergeWithDefaults(withEnv)
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}
