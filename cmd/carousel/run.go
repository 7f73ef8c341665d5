package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	carousel "github.com/alnah/go-carousel"
	"github.com/alnah/go-carousel/internal/assets"
	"github.com/alnah/go-carousel/internal/config"
	"github.com/alnah/go-carousel/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no input specified")
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrInvalidTimeout = errors.New("invalid timeout")
)

// defaultOutputDir receives the cards when neither flags, env nor config
// name a directory.
const defaultOutputDir = "dist"

// runMain dispatches commands and returns the process exit code.
// args includes the program name.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}
	rest := args[1:]

	switch rest[0] {
	case "version":
		fmt.Fprintf(env.Stdout, "carousel %s\n", Version)
		return ExitSuccess
	case "help":
		if !runHelp(rest[1:], env) {
			return ExitUsage
		}
		return ExitSuccess
	case "doctor":
		return runDoctorCmd(rest[1:], env)
	}

	flags, positional, err := parseGenerateFlags(rest, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runGenerate(ctx, positional, flags, env); err != nil {
		if errors.Is(err, ErrNoInput) || errors.Is(err, ErrTooManyArgs) {
			fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
			printUsage(env.Stderr)
			return ExitUsage
		}
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, configName(flags)))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runGenerate renders the cards for one script.
func runGenerate(ctx context.Context, positional []string, flags *generateFlags, env *Environment) error {
	avatarPath, inputPath, err := resolvePaths(positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	// Load configuration
	cfg := config.DefaultConfig()
	if name := configName(flags); name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Env fills gaps left by the file, then CLI wins
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout, cfg)
	if err != nil {
		return err
	}

	mode, err := carousel.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	opts, err := buildOptions(cfg, flags, timeout)
	if err != nil {
		return err
	}
	if !flags.common.quiet {
		opts = append(opts, carousel.WithProgress(env.Stdout))
	}

	script, err := carousel.ReadScript(inputPath)
	if err != nil {
		return err
	}

	gen, err := env.NewGenerator(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = gen.Close() }()

	input := carousel.Input{
		Script:     script,
		OutputDir:  resolveOutputDir(cfg),
		AvatarPath: avatarPath,
		Mode:       mode,
		MIMEPolicy: carousel.MIMEPolicy(strings.ToLower(cfg.Avatar.MIMEPolicy)),
		Seed:       flags.seed,
		Manifest:   cfg.Output.Manifest,
	}

	start := env.Now()
	result, err := gen.Generate(ctx, input)
	if err != nil {
		return err
	}

	printResult(result, input, env.Now().Sub(start), flags.common, env)
	return nil
}

// resolvePaths splits positional args into the optional avatar and the
// required script path.
func resolvePaths(args []string) (avatar, input string, err error) {
	switch len(args) {
	case 0:
		return "", "", ErrNoInput
	case 1:
		return "", args[0], nil
	case 2:
		return args[0], args[1], nil
	default:
		return "", "", fmt.Errorf("%w: got %d, want [AVATAR] <INPUT>", ErrTooManyArgs, len(args))
	}
}

// configName returns the config named by --config or CAROUSEL_CONFIG.
func configName(flags *generateFlags) string {
	if flags != nil && flags.common.config != "" {
		return flags.common.config
	}
	return loadEnvConfig().ConfigPath
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.mode != "" {
		cfg.Mode = flags.mode
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.manifest {
		cfg.Output.Manifest = true
	}
	if flags.mimePolicy != "" {
		cfg.Avatar.MIMEPolicy = flags.mimePolicy
	}

	// Asset flags
	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Layout flags
	if flags.layout.fillRatio != 0 {
		cfg.Layout.FillRatio = flags.layout.fillRatio
	}
	if flags.layout.headerHeight != 0 {
		cfg.Layout.HeaderHeight = flags.layout.headerHeight
	}

	// Highlight flags
	if flags.highlight.disabled {
		off := false
		cfg.Highlight.Heuristic = &off
	}
	cfg.Highlight.Phrases = append(cfg.Highlight.Phrases, flags.highlight.phrases...)
}

// resolveTimeout picks the browser timeout.
// Priority: --timeout flag > CAROUSEL_TIMEOUT > browser.timeout > library default (0).
func resolveTimeout(flagValue string, envValue time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q: must be positive", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return cfg.TimeoutDuration()
}

// resolveOutputDir determines the output directory from config.
func resolveOutputDir(cfg *config.Config) string {
	if cfg.Output.Dir != "" {
		return cfg.Output.Dir
	}
	return defaultOutputDir
}

// buildOptions translates the merged config into generator options.
func buildOptions(cfg *config.Config, flags *generateFlags, timeout time.Duration) ([]carousel.Option, error) {
	var opts []carousel.Option

	if timeout > 0 {
		opts = append(opts, carousel.WithTimeout(timeout))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, carousel.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Style != "" {
		opts = append(opts, carousel.WithStyle(cfg.Style))
	}
	if cfg.Template != "" {
		opts = append(opts, carousel.WithTemplateSet(cfg.Template))
	}

	opts = append(opts,
		carousel.WithLayout(carousel.Layout{
			HeaderHeight: cfg.Layout.HeaderHeight,
			Padding:      cfg.Layout.Padding,
			FillRatio:    cfg.Layout.FillRatio,
		}),
		carousel.WithHighlight(buildHighlight(cfg.Highlight)),
	)

	viewport, ok, err := buildViewport(cfg, flags.viewport)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, carousel.WithViewport(viewport))
	}

	return opts, nil
}

// buildHighlight overlays the configured rules on the built-in ones.
func buildHighlight(hc config.HighlightConfig) carousel.Highlight {
	h := carousel.DefaultHighlight()
	if hc.Heuristic != nil {
		h.Heuristic = *hc.Heuristic
	}
	if hc.MaxPhrases > 0 {
		h.MaxPhrases = hc.MaxPhrases
	}
	if len(hc.ExcludingTriggers) > 0 {
		h.ExcludingTriggers = hc.ExcludingTriggers
	}
	if len(hc.IncludingTriggers) > 0 {
		h.IncludingTriggers = hc.IncludingTriggers
	}
	if len(hc.Phrases) > 0 {
		h.Phrases = append(append([]string(nil), h.Phrases...), hc.Phrases...)
	}
	return h
}

// buildViewport returns the card size override, if any. The --viewport
// flag wins over viewport.width/height; a config with one side set keeps
// the mode's default for the other.
func buildViewport(cfg *config.Config, flagValue string) (carousel.Viewport, bool, error) {
	if flagValue != "" {
		v, err := parseViewport(flagValue)
		return v, err == nil, err
	}
	if cfg.Viewport.Width == 0 && cfg.Viewport.Height == 0 {
		return carousel.Viewport{}, false, nil
	}

	mode, err := carousel.ParseMode(cfg.Mode)
	if err != nil {
		return carousel.Viewport{}, false, err
	}
	v := carousel.DefaultViewport(mode)
	if cfg.Viewport.Width > 0 {
		v.Width = cfg.Viewport.Width
	}
	if cfg.Viewport.Height > 0 {
		v.Height = cfg.Viewport.Height
	}
	return v, true, nil
}

// printResult reports the run outcome on stdout.
func printResult(result *carousel.Result, input carousel.Input, elapsed time.Duration, common commonFlags, env *Environment) {
	if common.quiet {
		return
	}
	if result.Empty() {
		fmt.Fprintln(env.Stdout, "No content lines found, nothing generated")
		return
	}

	fmt.Fprintf(env.Stdout, "Generated %d card(s) in %s\n", len(result.Pages), input.OutputDir)
	if !common.verbose {
		return
	}

	fmt.Fprintf(env.Stdout, "  mode: %s\n", result.Mode)
	if result.CanvasHeight > 0 {
		fmt.Fprintf(env.Stdout, "  canvas height: %.0fpx\n", result.CanvasHeight)
	}
	if result.Manifest != "" {
		fmt.Fprintf(env.Stdout, "  manifest: %s\n", result.Manifest)
	}
	fmt.Fprintf(env.Stdout, "  elapsed: %v\n", elapsed.Round(time.Millisecond))
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error, cfgName string) string {
	switch {
	case errors.Is(err, carousel.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(cfgName))
	case errors.Is(err, carousel.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, carousel.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.EmbeddedStyles())
	case errors.Is(err, carousel.ErrAvatarNotFound), errors.Is(err, carousel.ErrAvatarEncode):
		return hints.ForAvatar()
	case errors.Is(err, carousel.ErrInputNotFound):
		return hints.ForInputNotFound()
	}
	return ""
}
