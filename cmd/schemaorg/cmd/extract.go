package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Togather-Foundation/schemaorg/internal/extract"
	"github.com/Togather-Foundation/schemaorg/schema"
	"github.com/Togather-Foundation/schemaorg/validation"
)

var extractValidateFlag bool

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file.html>",
	Short: "Extract JSON-LD blocks from an HTML document",
	Long: `Extract every JSON-LD block from a local HTML file and print it.
Top-level arrays, @graph containers, and ItemList wrappers are
flattened into individual objects.

The command reads local files and stdin only; it never fetches pages
from the network.

Examples:
  # Print the JSON-LD blocks embedded in a page
  schemaorg extract page.html

  # Extract and validate each recognized block
  schemaorg extract page.html --validate

  # Read the page from stdin
  curl -s https://example.org | schemaorg extract - --validate`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVar(&extractValidateFlag, "validate", false, "validate each recognized block after extraction")
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := readInput(cmd, path)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(path), err)
	}

	blocks, err := extract.Blocks(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(path), err)
	}
	if len(blocks) == 0 {
		return fmt.Errorf("no JSON-LD blocks in %s", displayName(path))
	}

	out := cmd.OutOrStdout()
	engine := validation.DefaultEngine()

	for i, block := range blocks {
		var buf bytes.Buffer
		if err := json.Indent(&buf, block, "", "  "); err != nil {
			buf.Reset()
			buf.Write(block)
		}
		fmt.Fprintln(out, buf.String())

		if !extractValidateFlag {
			continue
		}
		entity, err := schema.ParseDocument(block)
		if err != nil {
			fmt.Fprintf(out, "block %d: validation skipped: %v\n", i+1, err)
			continue
		}
		result := engine.Validate(entity)
		printReport(out, documentReport{
			name:    fmt.Sprintf("block %d", i+1),
			results: []validation.Result{result},
		})
	}
	return nil
}
