package config

// Notes:
// - Config-name search is tested with t.Chdir, so those subtests cannot run
//   in parallel with others in the package
// - The user config directory branch is covered through SearchPaths only

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Input.Encoding != "utf-8" {
		t.Errorf("Input.Encoding = %q, want utf-8", cfg.Input.Encoding)
	}
	if cfg.Output.Extension != ".soy" {
		t.Errorf("Output.Extension = %q, want .soy", cfg.Output.Extension)
	}
	if cfg.Mode != ModeConcepts || cfg.IsQuestionMode() {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeConcepts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"questions mode", func(c *Config) { c.Mode = "Questions" }, nil},
		{"empty mode", func(c *Config) { c.Mode = "" }, nil},
		{"empty encoding uses default", func(c *Config) { c.Input.Encoding = "" }, nil},
		{"latin1 encoding", func(c *Config) { c.Input.Encoding = "latin1" }, nil},
		{"empty extension", func(c *Config) { c.Output.Extension = "" }, nil},
		{"unknown mode", func(c *Config) { c.Mode = "slides" }, ErrInvalidMode},
		{"unknown encoding", func(c *Config) { c.Input.Encoding = "ebcdic" }, ErrInvalidEncoding},
		{"extension without dot", func(c *Config) { c.Output.Extension = "soy" }, ErrInvalidExtension},
		{"extension with separator", func(c *Config) { c.Output.Extension = "./soy" }, ErrInvalidExtension},
		{"extension too long", func(c *Config) { c.Output.Extension = "." + strings.Repeat("s", MaxExtensionLength) }, ErrFieldTooLong},
		{"empty allow entry", func(c *Config) { c.Rules.Allow = []string{" "} }, ErrInvalidRule},
		{"empty literal key", func(c *Config) { c.Rules.Literals = map[string]string{"": "x"} }, ErrInvalidRule},
		{"long deny entry", func(c *Config) { c.Rules.Deny = []string{strings.Repeat("x", MaxRuleLength+1)} }, ErrFieldTooLong},
		{"too many rules", func(c *Config) { c.Rules.Deny = make([]string, MaxRuleEntries+1) }, ErrInvalidRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRulesConfig_Extra(t *testing.T) {
	t.Parallel()

	rc := RulesConfig{
		Allow:    []string{`\vtr{`},
		Deny:     []string{`\small`},
		Literals: map[string]string{`\times`: "&times;"},
	}
	extra := rc.Extra()

	if diff := cmp.Diff(rc.Allow, extra.Allow); diff != "" {
		t.Errorf("Allow mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(rc.Deny, extra.Deny); diff != "" {
		t.Errorf("Deny mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(rc.Literals, extra.Literals); diff != "" {
		t.Errorf("Literals mismatch (-want +got):\n%s", diff)
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.yaml", `input:
  defaultDir: "/content/rutherford"
  encoding: "latin1"
output:
  defaultDir: "/build/soy"
mode: questions
rules:
  allow:
    - '\vtr{'
  deny:
    - '\small'
  literals:
    '\times': '&times;'
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "/content/rutherford" {
			t.Errorf("Input.DefaultDir = %q", cfg.Input.DefaultDir)
		}
		if cfg.Input.Encoding != "latin1" {
			t.Errorf("Input.Encoding = %q", cfg.Input.Encoding)
		}
		if cfg.Output.DefaultDir != "/build/soy" {
			t.Errorf("Output.DefaultDir = %q", cfg.Output.DefaultDir)
		}
		if !cfg.IsQuestionMode() {
			t.Errorf("Mode = %q, want questions", cfg.Mode)
		}
		if got := cfg.Rules.Literals[`\times`]; got != "&times;" {
			t.Errorf("literal = %q, want &times;", got)
		}
	})

	t.Run("missing fields keep defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "partial.yaml", "mode: concepts\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.Extension != ".soy" {
			t.Errorf("Output.Extension = %q, want .soy", cfg.Output.Extension)
		}
		if cfg.Input.Encoding != "utf-8" {
			t.Errorf("Input.Encoding = %q, want utf-8", cfg.Input.Encoding)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "mode: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "mode: concepts\nstyle: fancy\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value returns validation error", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "input:\n  encoding: ebcdic\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("error = %v, want ErrInvalidEncoding", err)
		}
	})

	t.Run("config name found in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "course.yml", "mode: questions\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("course")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.IsQuestionMode() {
			t.Errorf("Mode = %q, want questions", cfg.Mode)
		}
	})

	t.Run("config name not found lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("does-not-exist-7f3a")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "does-not-exist-7f3a.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("tex2soy")
	if len(paths) < 2 {
		t.Fatalf("got %d paths, want at least 2", len(paths))
	}
	if paths[0] != "tex2soy.yaml" || paths[1] != "tex2soy.yml" {
		t.Errorf("local paths = %q, want tex2soy.yaml then tex2soy.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppDir) {
			t.Errorf("user path %q should be under %s", p, AppDir)
		}
	}
}
