package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/code"
	"github.com/gorewood/ismism/internal/output"
)

// searchResult is the JSON shape of a search.
type searchResult struct {
	Query string         `json:"query"`
	Valid bool           `json:"valid"`
	Count int            `json:"count"`
	Isms  []*catalog.Ism `json:"isms"`
	Hint  string         `json:"hint,omitempty"`
}

// newSearchCmd creates the search command.
func newSearchCmd() *cobra.Command {
	return newSearchCmdInternal(nil)
}

// newSearchCmdInternal creates the search command with optional dataset injection.
// If ds is nil, the configured dataset is loaded when the command runs.
func newSearchCmdInternal(ds *catalog.Dataset) *cobra.Command {
	var namesFlag bool

	cmd := &cobra.Command{
		Use:   "search <query> | search <s1> <s2> <s3> <s4>",
		Short: "Find isms by code pattern",
		Long: `Find isms whose code matches a four-segment query.

Each segment is a digit 1-4 or '$'. A '$' in the first position finds only
subjectless isms; in any other position it matches every digit. A malformed
query matches nothing.

Examples:
  ismism search '1-$-$-$'          # All isms in field 1
  ismism search '$-$-$-$'          # All subjectless isms
  ismism search 2 1 '$' 4          # Segments as separate arguments
  ismism search '1-2-$-$' --names  # Compact code/name table`,
		Args: searchArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, ds, searchQuery(args), namesFlag)
		},
	}

	cmd.Flags().BoolVar(&namesFlag, "names", false, "Show only codes and names as a table")

	return cmd
}

// searchArgs accepts a whole query or one argument per segment.
func searchArgs(_ *cobra.Command, args []string) error {
	if len(args) == 1 || len(args) == code.Width {
		return nil
	}
	return output.NewUserError(fmt.Sprintf("expected a query or %d segments, got %d arguments", code.Width, len(args)))
}

// searchQuery joins per-segment arguments into a query.
func searchQuery(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return code.FromSegments(args...)
}

// runSearch executes the search command.
func runSearch(cmd *cobra.Command, ds *catalog.Dataset, query string, namesFlag bool) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	ds, err = env.dataset(ds)
	if err != nil {
		return err
	}

	result := searchResult{Query: query, Isms: []*catalog.Ism{}}
	if _, parseErr := code.Parse(query); parseErr != nil {
		result.Hint = parseErr.Error()
	} else {
		result.Valid = true
		if isms := ds.Search(query); isms != nil {
			result.Isms = isms
		}
	}
	result.Count = len(result.Isms)

	if env.printer.IsJSON() {
		return env.printer.WriteJSON(result)
	}
	outputSearchHuman(env.printer, result, namesFlag)
	return nil
}

// outputSearchHuman prints matches, or a hint when there are none.
func outputSearchHuman(printer *output.Printer, result searchResult, namesFlag bool) {
	if !result.Valid {
		printer.Warn("query %q matches nothing: %s", result.Query, result.Hint)
		return
	}
	if result.Count == 0 {
		printer.Muted("No isms match %s", result.Query)
		return
	}

	if namesFlag {
		rows := make([][]string, 0, len(result.Isms))
		for _, ism := range result.Isms {
			rows = append(rows, []string{printer.Code(ism.Code), ism.Name})
		}
		printer.Table([]string{"Code", "Name"}, rows)
	} else {
		for i, ism := range result.Isms {
			if i > 0 {
				printer.Println()
			}
			outputIsmHeadline(printer, ism)
			if desc := strings.TrimSpace(ism.Description); desc != "" {
				printer.Println(indent(desc, "  "))
			}
		}
	}

	printer.Println()
	printer.Muted("%d isms match %s", result.Count, result.Query)
}

// outputIsmHeadline prints "<code>  <name> (<aliases>)".
func outputIsmHeadline(printer *output.Printer, ism *catalog.Ism) {
	line := printer.Code(ism.Code) + "  " + ism.Name
	if len(ism.Aliases) > 0 {
		line += " (" + strings.Join(ism.Aliases, ", ") + ")"
	}
	printer.Println(line)
}

// indent prefixes every line of s.
func indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
