package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-tex2soy"
	"github.com/alnah/go-tex2soy/internal/config"
	"github.com/alnah/go-tex2soy/internal/fileutil"
	"github.com/alnah/go-tex2soy/internal/hints"
	"github.com/alnah/go-tex2soy/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrConflictingModes = errors.New("--questions and --concepts are mutually exclusive")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)

	if flags.mode.questions && flags.mode.concepts {
		return ErrConflictingModes
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(logger, env.Environ())

	cfg, err := resolveConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// CLI wins over env and file
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	mode := tex2soy.ModeConcept
	if cfg.IsQuestionMode() {
		mode = tex2soy.ModeQuestion
	}

	inputPath, err := resolveInputPath(positionalArgs, flags.input, cfg)
	if err != nil {
		printConvertUsage(env.Stderr)
		return err
	}

	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir, cfg.Output.Extension, flags.traverse)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	conv, err := env.NewConverter(
		tex2soy.WithLogger(logger),
		tex2soy.WithExtraRules(extraRules(cfg.Rules)),
	)
	if err != nil {
		return err
	}

	logger.Debug("converting", "files", len(files), "mode", mode.String(), "encoding", cfg.Input.Encoding)

	results := convertBatch(ctx, conv, files, &conversionParams{
		encoding:     cfg.Input.Encoding,
		mode:         mode,
		intermediate: flags.intermediate,
		logger:       logger,
		now:          env.Now,
	})

	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	return batchError(results)
}

// resolveConfig loads the named config, or the defaults when no name is
// given, and applies environment overrides. The --config flag wins over
// TEX2SOY_CONFIG.
func resolveConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags applies explicitly set CLI flags to cfg.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.encoding != "" {
		cfg.Input.Encoding = flags.encoding
	}
	if flags.mode.questions {
		cfg.Mode = config.ModeQuestions
	}
	if flags.mode.concepts {
		cfg.Mode = config.ModeConcepts
	}
}

// resolveInputPath determines input from --input, a positional argument, or
// config, in that order.
func resolveInputPath(args []string, flagInput string, cfg *config.Config) (string, error) {
	if flagInput != "" {
		return flagInput, nil
	}
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// extraRules converts configured rule entries to converter options.
func extraRules(r config.RulesConfig) tex2soy.ExtraRules {
	return tex2soy.ExtraRules{Allow: r.Allow, Deny: r.Deny, Literals: r.Literals}
}

// newLogger returns a text logger writing to w. Records are Info and above by
// default, Debug and above with verbose, and Error only with quiet.
func newLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// printEffectiveConfig writes the merged configuration as YAML.
func printEffectiveConfig(flags *configFlags, env *Environment) error {
	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := resolveConfig(flags.config, envCfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
