package main

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/output"
)

// newStatsCmd creates the stats command.
func newStatsCmd() *cobra.Command {
	return newStatsCmdInternal(nil)
}

// newStatsCmdInternal creates the stats command with optional dataset injection.
// If ds is nil, the configured dataset is loaded when the command runs.
func newStatsCmdInternal(ds *catalog.Dataset) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the dataset",
		Long: `Summarize the dataset: how many isms it holds, how many carry each kind
of detail, and how they spread over the first code segment.

Examples:
  ismism stats         # Human-readable summary
  ismism stats --json  # As JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStats(cmd, ds)
		},
	}
}

// runStats executes the stats command.
func runStats(cmd *cobra.Command, ds *catalog.Dataset) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	ds, err = env.dataset(ds)
	if err != nil {
		return err
	}

	stats := ds.Stats()
	if env.printer.IsJSON() {
		return env.printer.WriteJSON(stats)
	}
	outputStatsHuman(env.printer, stats)
	return nil
}

// outputStatsHuman prints totals then the per-field table.
func outputStatsHuman(printer *output.Printer, stats catalog.Stats) {
	printer.KeyValue("Total", strconv.Itoa(stats.Total))
	printer.KeyValue("With four grid", fraction(stats.WithFourGrid, stats.Total))
	printer.KeyValue("With key points", fraction(stats.WithKeyPoints, stats.Total))
	printer.KeyValue("With Q&A", fraction(stats.WithQA, stats.Total))
	printer.KeyValue("With extensions", fraction(stats.WithExtensions, stats.Total))
	printer.KeyValue("Subjectless", fraction(stats.Subjectless, stats.Total))
	if stats.Malformed > 0 {
		printer.KeyValue("Malformed codes", strconv.Itoa(stats.Malformed))
	}

	if len(stats.ByField) == 0 {
		return
	}
	printer.Section("By first segment")
	fields := make([]string, 0, len(stats.ByField))
	for field := range stats.ByField {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	rows := make([][]string, 0, len(fields))
	for _, field := range fields {
		rows = append(rows, []string{printer.Code(field), strconv.Itoa(stats.ByField[field])})
	}
	printer.Table([]string{"Field", "Isms"}, rows)
}

// fraction formats "n/total".
func fraction(n, total int) string {
	return fmt.Sprintf("%d/%d", n, total)
}
