package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNamespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{"nested directories", "/srv/rutherford/physics/mechanics/forces.tex", "rutherford.physics.mechanics", nil},
		{"mixed case lowered", "/srv/Rutherford/Physics/Forces.tex", "rutherford.physics", nil},
		{"file directly under anchor", "/srv/rutherford/forces.tex", "rutherford", nil},
		{"last anchor wins", "/rutherford/old/rutherford/maths/f.tex", "rutherford.maths", nil},
		{"anchor as file name ignored", "/srv/content/rutherford", "rutherford", ErrAnchorNotFound},
		{"no anchor", "/srv/content/forces.tex", "rutherford", ErrAnchorNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Namespace(tt.path)
			if got != tt.want {
				t.Errorf("Namespace(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTemplateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/a/b/forces.tex", "forces"},
		{"forces.v2.tex", "forces"},
		{"/a/README", "README"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := TemplateName(tt.path); got != tt.want {
				t.Errorf("TemplateName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	t.Parallel()

	got, err := Header("/srv/rutherford/physics/forces.tex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"{namespace rutherford.physics}",
		"",
		"/**",
		" * forces",
		" */",
		"{template .forces}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Header() mismatch (-want +got):\n%s", diff)
	}
}

func TestHeader_MissingAnchorStillUsable(t *testing.T) {
	t.Parallel()

	got, err := Header("/tmp/forces.tex")
	if !errors.Is(err, ErrAnchorNotFound) {
		t.Fatalf("error = %v, want ErrAnchorNotFound", err)
	}
	if got[0] != "{namespace rutherford}" {
		t.Errorf("namespace line = %q", got[0])
	}
	if got[len(got)-1] != "{template .forces}" {
		t.Errorf("template line = %q", got[len(got)-1])
	}
}
