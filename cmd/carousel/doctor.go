package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	json "github.com/goccy/go-json"

	carousel "github.com/alnah/go-carousel"
	"github.com/alnah/go-carousel/internal/assets"
	"github.com/alnah/go-carousel/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Version  string     `json:"version"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Cards    cardsInfo  `json:"cards"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool   `json:"temp_writable"`
	Config       string `json:"config,omitempty"` // CAROUSEL_CONFIG, if set
	ConfigFound  bool   `json:"config_found"`
}

// cardsInfo describes what a render with the current settings would use.
type cardsInfo struct {
	Mode           string   `json:"mode"`
	Viewport       string   `json:"viewport"` // WIDTHxHEIGHT
	TemplateSet    string   `json:"template_set"`
	AssetPath      string   `json:"asset_path,omitempty"`
	Style          string   `json:"style"`
	AssetsOK       bool     `json:"assets_ok"`
	EmbeddedStyles []string `json:"embedded_styles"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		default:
			fmt.Fprintf(env.Stderr, "doctor: unknown argument %s\n", arg)
			printDoctorUsage(env.Stderr)
			return ExitUsage
		}
	}

	result := runDoctor()

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor() *doctorResult {
	result := &doctorResult{
		Status:  "ready",
		Version: Version,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result)
	checkEnvironment(result)
	cfg := checkSystem(result)
	checkCards(result, cfg)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		// Use rod's launcher to locate Chrome
		var found bool
		chromePath, found = launcher.LookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	// Verify it exists
	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	// Get version by running chrome --version
	cmd := exec.Command(chromePath, "--version")
	out, err := cmd.Output()
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = sandboxEnabled(result.Env)
}

// sandboxEnabled mirrors the renderer's launch rules: the sandbox is off
// with ROD_NO_SANDBOX=1, CI=true or a custom browser binary.
func sandboxEnabled(e envInfo) bool {
	return e.NoSandbox != "1" && os.Getenv("CI") != "true" && e.BrowserBin == ""
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	// Detect container (multi-signal approach)
	result.Env.Container, result.Env.ContainerHint = isContainer()

	// Detect CI environments
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Warn if container/CI with the sandbox still on
	if (result.Env.Container || result.Env.CI) && sandboxEnabled(result.Env) {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("CAROUSEL_CONTAINER") == "1" {
		return true, "CAROUSEL_CONTAINER=1"
	}
	// Docker
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements and returns the configuration a
// render would start from.
func checkSystem(result *doctorResult) *config.Config {
	// Check temp directory is writable
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "carousel-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}

	// Config named by the environment must load
	name := os.Getenv("CAROUSEL_CONFIG")
	if name == "" {
		return config.DefaultConfig()
	}
	result.System.Config = name
	cfg, err := config.LoadConfig(name)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("CAROUSEL_CONFIG: %v", err))
		return config.DefaultConfig()
	}
	result.System.ConfigFound = true
	return cfg
}

// checkCards resolves mode, viewport, template set and style the way a
// generate run does and builds a generator from them. No browser starts.
func checkCards(result *doctorResult, cfg *config.Config) {
	applyEnvConfig(loadEnvConfig(), cfg)

	info := &result.Cards
	info.EmbeddedStyles = assets.EmbeddedStyles()
	info.AssetPath = cfg.Assets.BasePath
	info.TemplateSet = cfg.Template
	if info.TemplateSet == "" {
		info.TemplateSet = carousel.DefaultTemplateSet
	}
	info.Style = cfg.Style
	if info.Style == "" {
		info.Style = "default"
	}

	mode, err := carousel.ParseMode(cfg.Mode)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cards: %v", err))
		return
	}
	info.Mode = string(mode)

	opts, err := buildOptions(cfg, &generateFlags{}, 0)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cards: %v", err))
		return
	}
	viewport, ok, _ := buildViewport(cfg, "")
	if !ok {
		viewport = carousel.DefaultViewport(mode)
	}
	info.Viewport = fmt.Sprintf("%dx%d", viewport.Width, viewport.Height)

	gen, err := carousel.NewGenerator(opts...)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cards: %v", err))
		return
	}
	_ = gen.Close()
	info.AssetsOK = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintf(w, "carousel doctor (%s)\n", r.Version)
	fmt.Fprintln(w)

	// Chrome section
	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled")
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	// System section
	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	if r.System.ConfigFound {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.System.Config)
	}
	fmt.Fprintln(w)

	// Cards section
	fmt.Fprintln(w, "Cards")
	if r.Cards.Mode != "" {
		fmt.Fprintf(w, "  [OK] Mode: %s (%s)\n", r.Cards.Mode, r.Cards.Viewport)
	}
	source := "embedded"
	if r.Cards.AssetPath != "" {
		source = r.Cards.AssetPath
	}
	if r.Cards.AssetsOK {
		fmt.Fprintf(w, "  [OK] Template set: %s (%s)\n", r.Cards.TemplateSet, source)
		fmt.Fprintf(w, "  [OK] Style: %s\n", r.Cards.Style)
	} else {
		fmt.Fprintf(w, "  [ERROR] Template set %s / style %s not usable\n", r.Cards.TemplateSet, r.Cards.Style)
	}
	fmt.Fprintf(w, "  [OK] Built-in styles: %s\n", strings.Join(r.Cards.EmbeddedStyles, ", "))
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to render")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
