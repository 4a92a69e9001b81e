package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/code"
	"github.com/gorewood/ismism/internal/export"
	"github.com/gorewood/ismism/internal/output"
)

// Export formats accepted by --format.
const (
	formatJSON     = "json"
	formatMarkdown = "markdown"
	formatSQLite   = "sqlite"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	return newExportCmdInternal(nil)
}

// newExportCmdInternal creates the export command with optional dataset injection.
// If ds is nil, the configured dataset is loaded when the command runs.
func newExportCmdInternal(ds *catalog.Dataset) *cobra.Command {
	var formatFlag string
	var outFlag string
	var queryFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export isms to JSON, markdown or SQLite",
		Long: `Export the dataset, or the isms matching --query, to other formats.

Formats:
  json      JSON array to stdout, or a dataset file with --out
            (zstd-compressed when the path ends in .zst)
  markdown  Markdown to stdout, or one <code>.md file per ism in the --out directory
  sqlite    SQLite database at --out (required)

Examples:
  ismism export --json                               # All isms as JSON to stdout
  ismism export --query '1-$-$-$' --out field1.json   # Subset as a dataset file
  ismism export --out isms.json.zst                  # Compressed dataset file
  ismism export --format markdown --out ./notes/     # Markdown files
  ismism export --format sqlite --out isms.db        # SQLite database`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, ds, formatFlag, outFlag, queryFlag)
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", formatJSON, "Output format: json, markdown or sqlite")
	cmd.Flags().StringVar(&outFlag, "out", "", "Output file or directory (if omitted, writes to stdout)")
	cmd.Flags().StringVar(&queryFlag, "query", "", "Export only isms matching this code query")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, ds *catalog.Dataset, formatFlag, outFlag, queryFlag string) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	printer := env.printer

	format, err := validateExportFlags(formatFlag, outFlag, queryFlag)
	if err != nil {
		printer.Error(err)
		return err
	}

	ds, err = env.dataset(ds)
	if err != nil {
		return err
	}

	isms := ds.All()
	if queryFlag != "" {
		isms = ds.Search(queryFlag)
	}

	if outFlag == "" {
		return writeToStdout(printer, isms, format)
	}

	if err := writeToPath(cmd, isms, format, outFlag); err != nil {
		printer.Error(err)
		return err
	}
	env.logger.Debug("export written", zap.String("format", format), zap.String("path", outFlag), zap.Int("records", len(isms)))

	if printer.IsJSON() {
		return printer.Success(map[string]any{"format": format, "path": outFlag, "count": len(isms)})
	}
	printer.Print("Exported %d isms to %s\n", len(isms), outFlag)
	return nil
}

// validateExportFlags normalizes the format and checks flag combinations.
// A malformed --query is rejected here rather than exporting nothing.
func validateExportFlags(formatFlag, outFlag, queryFlag string) (string, error) {
	format := formatFlag
	if format == "md" {
		format = formatMarkdown
	}

	switch format {
	case formatJSON, formatMarkdown:
	case formatSQLite:
		if outFlag == "" {
			return "", output.NewUserError("--format sqlite requires --out")
		}
	default:
		return "", output.NewUserError("--format must be 'json', 'markdown' or 'sqlite'")
	}

	if queryFlag != "" {
		if _, err := code.Parse(queryFlag); err != nil {
			return "", output.NewUserErrorWithCause(fmt.Sprintf("invalid --query %q: %v", queryFlag, err), err)
		}
	}
	return format, nil
}

// writeToStdout writes isms to stdout in the specified format.
func writeToStdout(printer *output.Printer, isms []*catalog.Ism, format string) error {
	if format == formatJSON {
		return export.FormatJSON(printer, isms)
	}
	// Markdown to stdout: output each record separated by ---
	for i, ism := range isms {
		if i > 0 {
			printer.Println("---")
		}
		printer.Print("%s", export.FormatMarkdown(ism))
	}
	return nil
}

// writeToPath writes isms to a file or directory in the specified format.
func writeToPath(cmd *cobra.Command, isms []*catalog.Ism, format, outFlag string) error {
	switch format {
	case formatMarkdown:
		return export.WriteMarkdownFiles(isms, outFlag)
	case formatSQLite:
		return export.WriteSQLite(cmd.Context(), outFlag, isms)
	default:
		return export.WriteJSONFile(outFlag, isms)
	}
}
