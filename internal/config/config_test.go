package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// isolate points the global config dir at an empty temp dir and clears the
// dataset override.
func isolate(t *testing.T) string {
	t.Helper()
	global := t.TempDir()
	t.Setenv("ISMISM_CONFIG_HOME", global)
	t.Setenv(DatasetEnv, "")
	return global
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := &Config{Dataset: DefaultDataset, RelatedLimit: DefaultRelatedLimit, Color: DefaultColor}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ProjectYAML(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	write(t, project, "ismism.yaml", "dataset: data/isms.json\nrelated_limit: 6\n")

	cfg, err := Load(project)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dataset != filepath.Join(project, "data", "isms.json") {
		t.Errorf("Dataset = %q, want path relative to the config file", cfg.Dataset)
	}
	if cfg.RelatedLimit != 6 {
		t.Errorf("RelatedLimit = %d, want 6", cfg.RelatedLimit)
	}
	if cfg.Color != DefaultColor {
		t.Errorf("Color = %q, want default", cfg.Color)
	}
}

func TestLoad_GlobalTOMLBelowProject(t *testing.T) {
	global := isolate(t)
	project := t.TempDir()
	write(t, global, "config.toml", "dataset = \"/srv/isms.json.zst\"\ncolor = \"never\"\nrelated_limit = 2\n")
	write(t, project, "ismism.yaml", "related_limit: 8\n")

	cfg, err := Load(project)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Dataset != "/srv/isms.json.zst" {
		t.Errorf("Dataset = %q, want global value", cfg.Dataset)
	}
	if cfg.Color != "never" {
		t.Errorf("Color = %q, want global value", cfg.Color)
	}
	if cfg.RelatedLimit != 8 {
		t.Errorf("RelatedLimit = %d, project should win", cfg.RelatedLimit)
	}
	if len(cfg.Sources) != 2 {
		t.Errorf("Sources = %v, want project and global", cfg.Sources)
	}
}

func TestLoad_EnvWins(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	write(t, project, "ismism.yaml", "dataset: other.json\n")
	t.Setenv(DatasetEnv, "/env/isms.json")

	cfg, err := Load(project)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dataset != "/env/isms.json" {
		t.Errorf("Dataset = %q, want env value", cfg.Dataset)
	}
	if cfg.Sources[0] != "$"+DatasetEnv {
		t.Errorf("Sources = %v", cfg.Sources)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	isolate(t)
	project := t.TempDir()
	write(t, project, "ismism.yaml", "dataset: [unterminated\n")

	if _, err := Load(project); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestParse_NegativeLimit(t *testing.T) {
	if _, err := Parse("ismism.toml", []byte("related_limit = -1\n")); err == nil {
		t.Error("Parse() should reject a negative related_limit")
	}
}
