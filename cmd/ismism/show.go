package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/export"
	"github.com/gorewood/ismism/internal/output"
)

// renderWidth is the word-wrap width for --render.
const renderWidth = 80

// newShowCmd creates the show command.
func newShowCmd() *cobra.Command {
	return newShowCmdInternal(nil)
}

// newShowCmdInternal creates the show command with optional dataset injection.
// If ds is nil, the configured dataset is loaded when the command runs.
func newShowCmdInternal(ds *catalog.Dataset) *cobra.Command {
	var renderFlag bool

	cmd := &cobra.Command{
		Use:   "show <code|name>",
		Short: "Display a single ism",
		Long: `Display a single ism by exact code, or by name or alias.

Names are matched after Unicode normalization, so full-width and half-width
forms and letter case do not matter.

Examples:
  ismism show 1-2-3-4          # By code
  ismism show 科学实在论        # By name
  ismism show 1-2-3-4 --render # Render as formatted markdown
  ismism show 1-2-3-4 --json   # Show as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, ds, args[0], renderFlag)
		},
	}

	cmd.Flags().BoolVar(&renderFlag, "render", false, "Render the full record as formatted markdown")

	return cmd
}

// runShow executes the show command.
func runShow(cmd *cobra.Command, ds *catalog.Dataset, term string, renderFlag bool) error {
	env, err := prepare(cmd)
	if err != nil {
		return err
	}
	ds, err = env.dataset(ds)
	if err != nil {
		return err
	}

	ism, err := ds.Lookup(term)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			err = output.NewUserErrorWithCause("ism not found: "+strings.TrimSpace(term), err)
		}
		env.printer.Error(err)
		return err
	}

	if env.printer.IsJSON() {
		return env.printer.WriteJSON(ism)
	}
	if renderFlag {
		return outputShowRendered(env.printer, ism)
	}
	outputShowHuman(env.printer, ism)
	return nil
}

// outputShowRendered renders the markdown view with glamour.
// Without color the plain "notty" style keeps the output free of escapes.
func outputShowRendered(printer *output.Printer, ism *catalog.Ism) error {
	style := "notty"
	if printer.Color() {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("creating markdown renderer", err)
		printer.Error(sysErr)
		return sysErr
	}

	rendered, err := renderer.Render(export.FormatMarkdownBody(ism))
	if err != nil {
		sysErr := output.NewSystemErrorWithCause("rendering markdown", err)
		printer.Error(sysErr)
		return sysErr
	}
	printer.Print("%s", rendered)
	return nil
}

// outputShowHuman outputs the record in human-readable format.
func outputShowHuman(printer *output.Printer, ism *catalog.Ism) {
	outputIsmHeadline(printer, ism)
	outputShowDescription(printer, ism)
	outputShowFourGrid(printer, ism)
	outputShowList(printer, "Key Points", ism.KeyPoints)
	outputShowQA(printer, ism)
	outputShowExtensions(printer, ism)
}

func outputShowDescription(printer *output.Printer, ism *catalog.Ism) {
	desc := strings.TrimSpace(ism.Description)
	if desc == "" {
		return
	}
	printer.Section("Description")
	printer.Println(desc)
}

// outputShowFourGrid prints the filled grid positions.
func outputShowFourGrid(printer *output.Printer, ism *catalog.Ism) {
	if ism.FourGrid.IsEmpty() {
		return
	}
	printer.Section("Four Grid")
	for _, pos := range ism.FourGrid.Positions() {
		if pos.Item == nil {
			continue
		}
		printer.KeyValue(pos.Label+" "+pos.Item.Value, pos.Item.Text)
	}
}

func outputShowList(printer *output.Printer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	printer.Section(title)
	for _, item := range items {
		printer.Println("- " + item)
	}
}

func outputShowQA(printer *output.Printer, ism *catalog.Ism) {
	if len(ism.QA) == 0 {
		return
	}
	printer.Section("Q&A")
	for i, qa := range ism.QA {
		if i > 0 {
			printer.Println()
		}
		printer.KeyValue("Q", qa.Question)
		printer.KeyValue("A", qa.Answer)
	}
}

func outputShowExtensions(printer *output.Printer, ism *catalog.Ism) {
	if len(ism.Extensions) == 0 {
		return
	}
	printer.Section("Extensions")
	for _, ext := range ism.Extensions {
		if ext.Description == "" {
			printer.Println("- " + ext.Title)
			continue
		}
		printer.KeyValue("- "+ext.Title, ext.Description)
	}
}
