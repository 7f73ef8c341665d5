// Package config loads and validates carousel YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-carousel/internal/fileutil"
	"github.com/alnah/go-carousel/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// userConfigDirName is the directory searched under os.UserConfigDir().
const userConfigDirName = "go-carousel"

// Field limits.
const (
	MaxPathLength     = 4096
	MaxNameLength     = 64
	MaxPhraseLength   = 50
	MaxPhraseCount    = 50
	MaxPhrasesPerPara = 20
	MaxViewportSide   = 8192
)

// Config holds all configuration for card generation.
// Zero values mean "use the built-in default".
type Config struct {
	Mode      string          `yaml:"mode"`     // "lines" or "document"
	Template  string          `yaml:"template"` // template set name
	Style     string          `yaml:"style"`    // style name or CSS file path
	Output    OutputConfig    `yaml:"output"`
	Assets    AssetsConfig    `yaml:"assets"`
	Layout    LayoutConfig    `yaml:"layout"`
	Viewport  ViewportConfig  `yaml:"viewport"`
	Highlight HighlightConfig `yaml:"highlight"`
	Avatar    AvatarConfig    `yaml:"avatar"`
	Browser   BrowserConfig   `yaml:"browser"`
}

// OutputConfig defines where cards are written.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Manifest bool   `yaml:"manifest"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// LayoutConfig tunes document-mode pagination.
type LayoutConfig struct {
	FillRatio    float64 `yaml:"fillRatio"`
	HeaderHeight float64 `yaml:"headerHeight"`
	Padding      float64 `yaml:"padding"`
}

// ViewportConfig overrides the card size in CSS pixels.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// HighlightConfig tunes emphasis synthesis.
type HighlightConfig struct {
	Heuristic         *bool    `yaml:"heuristic"` // nil = enabled
	MaxPhrases        int      `yaml:"maxPhrases"`
	ExcludingTriggers []string `yaml:"excludingTriggers"`
	IncludingTriggers []string `yaml:"includingTriggers"`
	Phrases           []string `yaml:"phrases"`
}

// AvatarConfig selects how avatar MIME types are derived.
type AvatarConfig struct {
	MIMEPolicy string `yaml:"mimePolicy"` // "table" or "extension"
}

// BrowserConfig defines headless browser options.
type BrowserConfig struct {
	Timeout string `yaml:"timeout"` // Go duration, e.g. "90s"
}

// TimeoutDuration parses Browser.Timeout. An empty value yields 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Browser.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Browser.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: browser.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: browser.timeout: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks enumerations, ranges and field lengths.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := oneOf("mode", c.Mode, "lines", "document"); err != nil {
		return err
	}
	if err := oneOf("avatar.mimePolicy", c.Avatar.MIMEPolicy, "table", "extension"); err != nil {
		return err
	}

	for field, value := range map[string]string{
		"style":           c.Style,
		"output.dir":      c.Output.Dir,
		"assets.basePath": c.Assets.BasePath,
	} {
		if err := validateFieldLength(field, value, MaxPathLength); err != nil {
			return err
		}
	}
	if err := validateFieldLength("template", c.Template, MaxNameLength); err != nil {
		return err
	}

	if r := c.Layout.FillRatio; r < 0 || r > 1 {
		return fmt.Errorf("%w: layout.fillRatio: must be between 0 and 1, got %.2f", ErrInvalidValue, r)
	}
	if c.Layout.HeaderHeight < 0 || c.Layout.Padding < 0 {
		return fmt.Errorf("%w: layout.headerHeight and layout.padding must not be negative", ErrInvalidValue)
	}

	for field, side := range map[string]int{"viewport.width": c.Viewport.Width, "viewport.height": c.Viewport.Height} {
		if side < 0 || side > MaxViewportSide {
			return fmt.Errorf("%w: %s: must be between 0 and %d, got %d", ErrInvalidValue, field, MaxViewportSide, side)
		}
	}

	if m := c.Highlight.MaxPhrases; m < 0 || m > MaxPhrasesPerPara {
		return fmt.Errorf("%w: highlight.maxPhrases: must be between 0 and %d, got %d", ErrInvalidValue, MaxPhrasesPerPara, m)
	}
	for field, list := range map[string][]string{
		"highlight.excludingTriggers": c.Highlight.ExcludingTriggers,
		"highlight.includingTriggers": c.Highlight.IncludingTriggers,
		"highlight.phrases":           c.Highlight.Phrases,
	} {
		if err := validatePhraseList(field, list); err != nil {
			return err
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return nil
}

func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be %s)", ErrInvalidValue, field, value, strings.Join(allowed, " or "))
}

func validatePhraseList(field string, list []string) error {
	if len(list) > MaxPhraseCount {
		return fmt.Errorf("%w: %s: %d entries, max %d", ErrInvalidValue, field, len(list), MaxPhraseCount)
	}
	for i, p := range list {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: %s[%d]: empty entry", ErrInvalidValue, field, i)
		}
		if err := validateFieldLength(fmt.Sprintf("%s[%d]", field, i), p, MaxPhraseLength); err != nil {
			return err
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every field falls back to
// the generator's built-in default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as {name}.yaml/.yml in the current directory and
// then in the user config directory. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	if err := yamlutil.DecodeStrict(f, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths returns the candidate files for a config name, in lookup order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, userConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
