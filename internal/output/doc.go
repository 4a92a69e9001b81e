// Package output provides structured output and exit-coded errors for the
// ismism CLI.
//
// Every command writes through a Printer, which switches between JSON and
// styled human output:
//
//	color := output.ResolveColorMode(colorFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, color)
//	printer.Table([]string{"Code", "Name"}, rows)
//
// In JSON mode errors are written as {"error": "message", "code": N}.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: success, including an empty search result
//	output.ExitUserError   // 1: bad arguments, unknown code or name
//	output.ExitSystemError // 2: I/O failure
//	output.ExitDataError   // 3: invalid dataset or lint issues
//
// A search that finds nothing is not an error.
package output
