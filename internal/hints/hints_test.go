package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     []string
		exclude  []string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"tex2soy.yaml", "/home/u/.config/go-tex2soy/tex2soy.yaml"},
			want:     []string{"--config", "or create /home/u/.config/go-tex2soy/tex2soy.yaml"},
		},
		{
			name:     "windows user config path",
			searched: []string{`C:\Users\u\AppData\Roaming\go-tex2soy\tex2soy.yaml`},
			want:     []string{"or create"},
		},
		{
			name:     "local paths only",
			searched: []string{"tex2soy.yaml", "tex2soy.yml"},
			want:     []string{"--config"},
			exclude:  []string{"or create"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.searched)
			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q lacks prefix", hint)
			}
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint %q missing %q", hint, w)
				}
			}
			for _, x := range tt.exclude {
				if strings.Contains(hint, x) {
					t.Errorf("hint %q should not contain %q", hint, x)
				}
			}
		})
	}
}

func TestForEncoding(t *testing.T) {
	t.Parallel()

	if got := ForEncoding(nil); got != "" {
		t.Errorf("ForEncoding(nil) = %q, want empty", got)
	}
	got := ForEncoding([]string{"latin1", "utf-8"})
	if !strings.Contains(got, "latin1, utf-8") {
		t.Errorf("ForEncoding() = %q", got)
	}
}

func TestForNoInput(t *testing.T) {
	t.Parallel()

	if !strings.Contains(ForNoInput(true), ".tex") {
		t.Error("traverse hint should mention .tex")
	}
	if !strings.Contains(ForNoInput(false), "--traverse") {
		t.Error("single-file hint should mention --traverse")
	}
}

func TestForMissingMarker(t *testing.T) {
	t.Parallel()

	if !strings.Contains(ForMissingMarker(true), `\begin{problem}`) {
		t.Error("question hint should name the problem marker")
	}
	concept := ForMissingMarker(false)
	if !strings.Contains(concept, `\begin{document}`) || !strings.Contains(concept, "--questions") {
		t.Errorf("concept hint = %q", concept)
	}
}

func TestStaticHints(t *testing.T) {
	t.Parallel()

	for _, h := range []string{ForOutputDirectory(), ForNamespace("rutherford")} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint %q lacks prefix", h)
		}
	}
}
