package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-tex2soy/internal/fileutil"
	"github.com/alnah/go-tex2soy/internal/rules"
	"github.com/alnah/go-tex2soy/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound   = errors.New("config file not found")
	ErrEmptyConfigName  = errors.New("config name cannot be empty")
	ErrConfigParse      = errors.New("failed to parse config")
	ErrFieldTooLong     = errors.New("field exceeds maximum length")
	ErrInvalidEncoding  = errors.New("invalid input encoding")
	ErrInvalidMode      = errors.New("invalid conversion mode")
	ErrInvalidExtension = errors.New("invalid output extension")
	ErrInvalidRule      = errors.New("invalid rule entry")
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-tex2soy"

// Accepted mode names.
const (
	ModeConcepts  = "concepts"
	ModeQuestions = "questions"
)

// Field length limits.
const (
	MaxPathLength      = 4096
	MaxEncodingLength  = 20
	MaxExtensionLength = 16
	MaxModeLength      = 20
	MaxRuleLength      = 200
	MaxRuleEntries     = 500
)

// Config holds all configuration for a conversion run.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Mode   string       `yaml:"mode"` // "concepts" or "questions"
	Rules  RulesConfig  `yaml:"rules"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input path (empty = must specify)
	Encoding   string `yaml:"encoding"`   // utf-8, utf-16, latin1, windows-1252
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to source)
	Extension  string `yaml:"extension"`  // Output file extension, with leading dot
}

// RulesConfig extends the built-in rule tables.
type RulesConfig struct {
	Allow    []string          `yaml:"allow"`
	Deny     []string          `yaml:"deny"`
	Literals map[string]string `yaml:"literals"`
}

// Extra converts the configured entries to rule table additions.
func (r RulesConfig) Extra() rules.Extra {
	return rules.Extra{Allow: r.Allow, Deny: r.Deny, Literals: r.Literals}
}

// IsQuestionMode reports whether the configured mode selects problem sheets.
func (c *Config) IsQuestionMode() bool {
	return strings.EqualFold(strings.TrimSpace(c.Mode), ModeQuestions)
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("input.encoding", c.Input.Encoding, MaxEncodingLength); err != nil {
		return err
	}
	if _, err := fileutil.LookupEncoding(c.Input.Encoding); err != nil {
		return fmt.Errorf("%w: input.encoding %q (supported: %s)",
			ErrInvalidEncoding, c.Input.Encoding, strings.Join(fileutil.Encodings(), ", "))
	}

	if err := validateFieldLength("output.extension", c.Output.Extension, MaxExtensionLength); err != nil {
		return err
	}
	if c.Output.Extension != "" {
		if err := fileutil.ValidateExtension(c.Output.Extension); err != nil {
			return fmt.Errorf("%w: output.extension %q: %v", ErrInvalidExtension, c.Output.Extension, err)
		}
	}

	if err := validateFieldLength("mode", c.Mode, MaxModeLength); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.Mode)) {
	case "", ModeConcepts, ModeQuestions:
		// valid
	default:
		return fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidMode, c.Mode, ModeConcepts, ModeQuestions)
	}

	return c.Rules.validate()
}

func (r RulesConfig) validate() error {
	total := len(r.Allow) + len(r.Deny) + len(r.Literals)
	if total > MaxRuleEntries {
		return fmt.Errorf("%w: %d entries (max %d)", ErrInvalidRule, total, MaxRuleEntries)
	}

	for i, a := range r.Allow {
		if err := validateRule(fmt.Sprintf("rules.allow[%d]", i), a); err != nil {
			return err
		}
	}
	for i, d := range r.Deny {
		if err := validateRule(fmt.Sprintf("rules.deny[%d]", i), d); err != nil {
			return err
		}
	}
	for from, to := range r.Literals {
		if err := validateRule("rules.literals key", from); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("rules.literals[%q]", from), to, MaxRuleLength); err != nil {
			return err
		}
	}

	if _, err := rules.New(r.Extra()); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}
	return nil
}

func validateRule(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is empty", ErrInvalidRule, fieldName)
	}
	return validateFieldLength(fieldName, value, MaxRuleLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: "", Encoding: fileutil.DefaultEncoding},
		Output: OutputConfig{DefaultDir: "", Extension: ".soy"},
		Mode:   ModeConcepts,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields missing from the file keep their defaults.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the locations tried for a config name, in order:
// current directory then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
