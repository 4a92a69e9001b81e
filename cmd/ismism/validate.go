package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/output"
)

// validateResult is the JSON shape of a validation run.
type validateResult struct {
	Valid  bool            `json:"valid"`
	Total  int             `json:"total"`
	Issues []catalog.Issue `json:"issues"`
}

// newValidateCmd creates the validate command.
func newValidateCmd() *cobra.Command {
	return newValidateCmdInternal(nil)
}

// newValidateCmdInternal creates the validate command with optional dataset injection.
// If ds is nil, the configured dataset is loaded when the command runs.
func newValidateCmdInternal(ds *catalog.Dataset) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset for unusable records",
		Long: `Load the dataset and report records that load but cannot be used well:
codes that are not four valid segments (they never match a search) and
records without a description.

Exits 0 when the dataset is clean, 1 when it cannot be found, and 3 when it
is invalid or has issues.

Examples:
  ismism validate
  ismism validate --dataset build/isms.json.zst --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd, ds)
		},
	}
}

// runValidate executes the validate command.
func runValidate(cmd *cobra.Command, ds *catalog.Dataset) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	ds, err = env.dataset(ds)
	if err != nil {
		return err
	}

	issues := ds.Lint()
	result := validateResult{Valid: len(issues) == 0, Total: ds.Len(), Issues: issues}
	if result.Issues == nil {
		result.Issues = []catalog.Issue{}
	}

	if env.printer.IsJSON() {
		if err := env.printer.WriteJSON(result); err != nil {
			return err
		}
	} else {
		outputValidateHuman(env.printer, result)
	}

	if !result.Valid {
		return output.NewDataError(fmt.Sprintf("%d issues in %d isms", len(issues), ds.Len()))
	}
	return nil
}

func outputValidateHuman(printer *output.Printer, result validateResult) {
	if result.Valid {
		_ = printer.Success(map[string]any{"message": fmt.Sprintf("Dataset OK: %d isms", result.Total)})
		return
	}

	rows := make([][]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		rows = append(rows, []string{issue.Code, issue.Name, issue.Problem})
	}
	printer.Table([]string{"Code", "Name", "Problem"}, rows)
	printer.Println()
	printer.Warn("%d issues in %d isms", len(result.Issues), result.Total)
}
