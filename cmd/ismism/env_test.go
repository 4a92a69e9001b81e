package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/ismism/internal/output"
)

func TestDatasetResolution(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, global, dataset string) []string
		wantExit int
	}{
		{
			name: "dataset flag",
			setup: func(_ *testing.T, _, dataset string) []string {
				return []string{"--dataset", dataset}
			},
		},
		{
			name: "dataset env",
			setup: func(t *testing.T, _, dataset string) []string {
				t.Setenv("ISMISM_DATASET", dataset)
				return nil
			},
		},
		{
			name: "global config file",
			setup: func(t *testing.T, global, dataset string) []string {
				content := "dataset = \"" + filepath.ToSlash(dataset) + "\"\n"
				if err := os.WriteFile(filepath.Join(global, "config.toml"), []byte(content), 0o600); err != nil {
					t.Fatal(err)
				}
				return nil
			},
		},
		{
			name: "global env file",
			setup: func(t *testing.T, global, dataset string) []string {
				if err := os.WriteFile(filepath.Join(global, "env"), []byte("ISMISM_DATASET="+dataset+"\n"), 0o600); err != nil {
					t.Fatal(err)
				}
				return nil
			},
		},
		{
			name: "flag beats env",
			setup: func(t *testing.T, _, dataset string) []string {
				t.Setenv("ISMISM_DATASET", dataset+".missing")
				return []string{"--dataset", dataset}
			},
		},
		{
			name: "missing dataset",
			setup: func(_ *testing.T, _, dataset string) []string {
				return []string{"--dataset", dataset + ".missing"}
			},
			wantExit: output.ExitUserError,
		},
		{
			name: "invalid color",
			setup: func(_ *testing.T, _, dataset string) []string {
				return []string{"--dataset", dataset, "--color", "sometimes"}
			},
			wantExit: output.ExitUserError,
		},
		{
			name: "invalid config file",
			setup: func(t *testing.T, global, _ string) []string {
				if err := os.WriteFile(filepath.Join(global, "config.yaml"), []byte("dataset: [\n"), 0o600); err != nil {
					t.Fatal(err)
				}
				return nil
			},
			wantExit: output.ExitUserError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			global := isolateConfig(t)
			dataset := writeTestDataset(t)
			args := append([]string{"--json"}, tt.setup(t, global, dataset)...)

			out, err := executeCmd(t, newStatsCmd(), args...)
			if code := output.GetExitCode(err); code != tt.wantExit {
				t.Fatalf("exit code = %d, want %d\noutput: %s", code, tt.wantExit, out)
			}
			if tt.wantExit == output.ExitSuccess && !strings.Contains(out, `"total": 6`) {
				t.Errorf("stats did not read the dataset\noutput: %s", out)
			}
		})
	}
}

func TestDatasetResolution_CorruptFile(t *testing.T) {
	isolateConfig(t)
	path := filepath.Join(t.TempDir(), "isms.json")
	if err := os.WriteFile(path, []byte(`{"isms": [`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := executeCmd(t, newStatsCmd(), "--dataset", path)
	if code := output.GetExitCode(err); code != output.ExitDataError {
		t.Errorf("exit code = %d, want %d", code, output.ExitDataError)
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	isolateConfig(t)
	dataset := writeTestDataset(t)

	out, err := executeCmd(t, newStatsCmd(), "--dataset", dataset, "--verbose")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "dataset loaded") {
		t.Errorf("--verbose should log dataset loading\noutput: %s", out)
	}

	out, err = executeCmd(t, newStatsCmd(), "--dataset", dataset)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.Contains(out, "dataset loaded") {
		t.Errorf("logs should be silent without --verbose\noutput: %s", out)
	}
}
