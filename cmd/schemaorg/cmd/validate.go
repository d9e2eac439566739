package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Togather-Foundation/schemaorg/validation"
)

var (
	validateStrictExit  bool
	validateStopOnFirst bool
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file...>",
	Short: "Validate entity documents against the built-in rules",
	Long: `Validate schema.org entity documents. Each finding is reported with
its severity, code, property, and message. Warnings never make a
document invalid.

Exit codes:
  0 - All inputs were read; without --strict-exit, findings do not fail the command
  1 - An input could not be read, or --strict-exit was set and a document is invalid

Examples:
  # Validate one file and list the findings
  schemaorg validate article.json

  # Validate several files, failing the build on invalid documents
  schemaorg validate content/*.json --strict-exit

  # Stop each document at its first error
  schemaorg validate article.json --stop-on-first`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateStrictExit, "strict-exit", false, "exit non-zero when any document is invalid")
	validateCmd.Flags().BoolVar(&validateStopOnFirst, "stop-on-first", false, "stop each document at its first error")
}

// documentReport carries one input's validation outcome from the
// worker goroutine back to the printer.
type documentReport struct {
	name    string
	results []validation.Result
	err     error
}

func runValidate(cmd *cobra.Command, args []string) error {
	var opts []validation.Option
	if validateStopOnFirst {
		opts = append(opts, validation.WithStopOnFirstError())
	}
	engine := validation.DefaultEngine(opts...)

	// Inputs are validated concurrently. Reports keep argument order so
	// output stays deterministic regardless of completion order.
	reports := make([]documentReport, len(args))
	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			name := displayName(path)
			entities, err := loadEntities(cmd, path)
			if err != nil {
				reports[i] = documentReport{name: name, err: err}
				return err
			}
			results := make([]validation.Result, len(entities))
			for j, e := range entities {
				results[j] = engine.Validate(e)
			}
			reports[i] = documentReport{name: name, results: results}
			return nil
		})
	}
	waitErr := g.Wait()

	out := cmd.OutOrStdout()
	invalid := 0
	for _, rep := range reports {
		invalid += printReport(out, rep)
	}

	if waitErr != nil {
		return fmt.Errorf("reading inputs: %w", waitErr)
	}
	if validateStrictExit && invalid > 0 {
		return fmt.Errorf("%s invalid", plural(invalid, "document"))
	}
	return nil
}

// printReport writes one input's outcome and returns how many of its
// documents were invalid.
func printReport(w io.Writer, rep documentReport) int {
	if rep.err != nil {
		// The error already names the input.
		fmt.Fprintf(w, "error: %v\n", rep.err)
		return 0
	}

	invalid := 0
	for j, result := range rep.results {
		label := rep.name
		if len(rep.results) > 1 {
			label = fmt.Sprintf("%s #%d", rep.name, j)
		}

		switch {
		case result.Valid && len(result.Warnings) == 0:
			fmt.Fprintf(w, "%s: valid\n", label)
		case result.Valid:
			fmt.Fprintf(w, "%s: valid (%s)\n", label, plural(len(result.Warnings), "warning"))
		default:
			invalid++
			fmt.Fprintf(w, "%s: invalid (%s, %s)\n", label,
				plural(len(result.Errors), "error"), plural(len(result.Warnings), "warning"))
		}

		printFindings(w, result.Errors)
		printFindings(w, result.Warnings)
	}
	return invalid
}

func printFindings(w io.Writer, findings []validation.Error) {
	for _, f := range findings {
		fmt.Fprintf(w, "  %-8s %-26s %-15s %s\n", f.Severity, f.Code, f.Property, f.Message)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
