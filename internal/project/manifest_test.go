package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Manifest
		wantErr error
	}{
		{
			name: "full",
			body: "[package]\nname = \"demo\"\n\n[lift]\nmax_rounds = 16\nvalidate = true\njobs = 4\n",
			want: Manifest{Name: "demo", Lift: LiftConfig{MaxRounds: 16, Validate: true, Jobs: 4}},
		},
		{
			name: "package only",
			body: "[package]\nname = \"demo\"\n",
			want: Manifest{Name: "demo"},
		},
		{
			name:    "missing package",
			body:    "[lift]\nvalidate = true\n",
			wantErr: ErrPackageSectionMissing,
		},
		{
			name:    "blank name",
			body:    "[package]\nname = \"  \"\n",
			wantErr: ErrPackageNameMissing,
		},
		{
			name:    "bad rounds",
			body:    "[package]\nname = \"demo\"\n\n[lift]\nmax_rounds = -1\n",
			wantErr: ErrBadMaxRounds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.body)
			got, err := LoadManifest(path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadManifest failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("manifest = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"demo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest = (%q, %v, %v)", path, ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %q, want file under %q", path, root)
	}

	gotRoot, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || gotRoot != root {
		t.Fatalf("FindProjectRoot = (%q, %v, %v), want %q", gotRoot, ok, err, root)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	_, ok, err := FindManifest(t.TempDir())
	if err != nil {
		t.Fatalf("FindManifest failed: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest in an empty tree")
	}
}
