package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/config"
	"github.com/gorewood/ismism/internal/export"
)

// isolateConfig points the global config at an empty directory and clears
// the dataset override. Returns the global config directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ISMISM_CONFIG_HOME", dir)
	t.Setenv(config.DatasetEnv, "")
	return dir
}

func testIsms() []*catalog.Ism {
	return []*catalog.Ism{
		{
			Code:        "1-1-1-1",
			Name:        "科学实在论",
			Aliases:     []string{"实在论"},
			Description: "世界独立于心灵而存在。",
			FourGrid: catalog.FourGrid{
				Ontology: &catalog.GridItem{Value: "1", Text: "场域是一元的"},
				Purpose:  &catalog.GridItem{Value: "1", Text: "目的在于认识"},
			},
			KeyPoints: []string{"观察独立于观察者"},
			QA:        []catalog.QA{{Question: "何为实在?", Answer: "独立之物。"}},
		},
		{Code: "1-1-2-1", Name: "经验论", Description: "知识来自经验。"},
		{Code: "1-2-1-1", Name: "唯物论", Description: "物质第一性。"},
		{Code: "$-1-1-1", Name: "无主体论", Description: "没有主体。"},
		{Code: "2-1-1-1", Name: "形而上学", Description: "超越经验。"},
		{Code: "1-1-x", Name: "残缺码"},
	}
}

func testDataset() *catalog.Dataset {
	return catalog.MustNew(testIsms())
}

// writeTestDataset writes testIsms to a dataset file and returns its path.
func writeTestDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "isms.json")
	if err := export.WriteJSONFile(path, testIsms()); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

// executeCmd runs child under a root carrying the persistent flags and
// returns combined stdout and stderr.
func executeCmd(t *testing.T, child *cobra.Command, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "ismism", SilenceUsage: true, SilenceErrors: true}
	addPersistentFlags(root)
	root.AddCommand(child)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{child.Name()}, args...))

	err := root.Execute()
	return buf.String(), err
}
