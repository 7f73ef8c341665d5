package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-carousel/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // CAROUSEL_CONFIG: config file path
	Mode       string        // CAROUSEL_MODE: lines or document
	OutputDir  string        // CAROUSEL_OUTPUT_DIR: output directory
	Style      string        // CAROUSEL_STYLE: CSS style name or path
	Timeout    time.Duration // CAROUSEL_TIMEOUT: browser timeout
	FillRatio  float64       // CAROUSEL_FILL_RATIO: page fill ratio
}

// knownEnvVars lists valid CAROUSEL_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CAROUSEL_CONFIG":     true,
	"CAROUSEL_MODE":       true,
	"CAROUSEL_OUTPUT_DIR": true,
	"CAROUSEL_STYLE":      true,
	"CAROUSEL_TIMEOUT":    true,
	"CAROUSEL_FILL_RATIO": true,
	"CAROUSEL_CONTAINER":  true, // read by doctor
}

// loadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set win. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numeric values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CAROUSEL_CONFIG"),
		Mode:       os.Getenv("CAROUSEL_MODE"),
		OutputDir:  os.Getenv("CAROUSEL_OUTPUT_DIR"),
		Style:      os.Getenv("CAROUSEL_STYLE"),
	}

	if timeout := os.Getenv("CAROUSEL_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if ratio := os.Getenv("CAROUSEL_FILL_RATIO"); ratio != "" {
		if r, err := strconv.ParseFloat(ratio, 64); err == nil && r > 0 && r <= 1 {
			cfg.FillRatio = r
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CAROUSEL_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "CAROUSEL_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags; timeout in resolveTimeout)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Mode != "" && cfg.Mode == "" {
		cfg.Mode = env.Mode
	}
	if env.OutputDir != "" && cfg.Output.Dir == "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Style != "" && cfg.Style == "" {
		cfg.Style = env.Style
	}
	if env.FillRatio > 0 && cfg.Layout.FillRatio == 0 {
		cfg.Layout.FillRatio = env.FillRatio
	}
}
