package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/output"
)

// relatedResult is the JSON shape of a related listing.
type relatedResult struct {
	Code  string         `json:"code"`
	Count int            `json:"count"`
	Isms  []*catalog.Ism `json:"isms"`
}

// newRelatedCmd creates the related command.
func newRelatedCmd() *cobra.Command {
	return newRelatedCmdInternal(nil)
}

// newRelatedCmdInternal creates the related command with optional dataset injection.
// If ds is nil, the configured dataset is loaded when the command runs.
func newRelatedCmdInternal(ds *catalog.Dataset) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "related <code>",
		Short: "List isms sharing the first two code segments",
		Long: `List isms whose code starts with the same two segments as <code>.

The ism itself is excluded. The limit defaults to related_limit from the
config file, or 4.

Examples:
  ismism related 1-2-3-4            # Up to 4 neighbours of 1-2-3-4
  ismism related 1-2-3-4 --limit 10 # Up to 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelated(cmd, ds, args[0], limitFlag)
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum number of isms (default from config)")

	return cmd
}

// runRelated executes the related command.
func runRelated(cmd *cobra.Command, ds *catalog.Dataset, c string, limitFlag int) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	if limitFlag < 0 {
		err := output.NewUserError("--limit must not be negative")
		env.printer.Error(err)
		return err
	}
	ds, err = env.dataset(ds)
	if err != nil {
		return err
	}

	limit := limitFlag
	if limit == 0 {
		limit = env.cfg.RelatedLimit
	}

	result := relatedResult{Code: c, Isms: []*catalog.Ism{}}
	if isms := ds.Related(c, limit); isms != nil {
		result.Isms = isms
	}
	result.Count = len(result.Isms)

	if env.printer.IsJSON() {
		return env.printer.WriteJSON(result)
	}

	if result.Count == 0 {
		env.printer.Muted("No isms related to %s", c)
		return nil
	}
	rows := make([][]string, 0, result.Count)
	for _, ism := range result.Isms {
		rows = append(rows, []string{env.printer.Code(ism.Code), ism.Name})
	}
	env.printer.Table([]string{"Code", "Name"}, rows)
	return nil
}
