package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Togather-Foundation/schemaorg/jsonld"
	"github.com/Togather-Foundation/schemaorg/render"
	"github.com/Togather-Foundation/schemaorg/validation"
)

var (
	renderFormat        string
	renderOutput        string
	renderPretty        bool
	renderCompact       bool
	renderScriptTag     bool
	renderEscapeSlashes bool
	renderEscapeUnicode bool
	renderContainer     string
	renderStrict        bool
	renderExpand        bool
)

// renderCmd represents the render command
var renderCmd = &cobra.Command{
	Use:   "render <file...>",
	Short: "Render entity documents as JSON-LD, Microdata, or RDFa",
	Long: `Render schema.org entity documents in one of the supported output
formats. Each input may contain a single JSON-LD object or a top-level
array of objects; every document is rendered in order.

Examples:
  # Render an article as pretty-printed JSON-LD
  schemaorg render article.json --pretty

  # Produce an embeddable script tag
  schemaorg render article.json --script-tag

  # Render Microdata inside an <article> container
  schemaorg render article.json --format microdata --container article

  # Validate before rendering, failing on invalid entities
  schemaorg render article.json --strict

  # Read YAML from stdin and print the expanded JSON-LD form
  cat article.yaml | schemaorg render - --expand`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderFormat, "format", "jsonld", "output format (jsonld, microdata, rdfa)")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write output to a file instead of stdout")
	renderCmd.Flags().BoolVar(&renderPretty, "pretty", false, "indent the output")
	renderCmd.Flags().BoolVar(&renderCompact, "compact", false, "drop empty values before encoding (jsonld only)")
	renderCmd.Flags().BoolVar(&renderScriptTag, "script-tag", false, "wrap JSON-LD in a <script> element for embedding")
	renderCmd.Flags().BoolVar(&renderEscapeSlashes, "escape-slashes", false, `escape "/" as "\/" (jsonld only)`)
	renderCmd.Flags().BoolVar(&renderEscapeUnicode, "escape-unicode", false, `escape non-ASCII characters as \uXXXX (jsonld only)`)
	renderCmd.Flags().StringVar(&renderContainer, "container", "", "container element for microdata/rdfa (default: div)")
	renderCmd.Flags().BoolVar(&renderStrict, "strict", false, "refuse to render entities that fail validation")
	renderCmd.Flags().BoolVar(&renderExpand, "expand", false, "print the expanded JSON-LD document instead of rendering")
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := applyRenderProfile(cmd); err != nil {
		return err
	}

	if renderExpand {
		return renderExpanded(cmd, args)
	}

	renderer, err := buildRenderer()
	if err != nil {
		return err
	}

	var docs []string
	for _, path := range args {
		entities, err := loadEntities(cmd, path)
		if err != nil {
			return err
		}
		for _, e := range entities {
			doc, err := renderer.Render(e)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(path), err)
			}
			docs = append(docs, doc)
		}
	}

	return writeOutput(cmd, strings.Join(docs, "\n")+"\n")
}

// buildRenderer assembles a renderer from the render flags, wrapping it
// in validation when --strict is set.
func buildRenderer() (render.Renderer, error) {
	format, err := render.ParseFormat(renderFormat)
	if err != nil {
		return nil, err
	}

	var renderer render.Renderer
	switch format {
	case render.FormatJSONLD:
		renderer = render.NewJSONLD().
			Pretty(renderPretty).
			Compact(renderCompact).
			EscapeSlashes(renderEscapeSlashes).
			EscapeUnicode(renderEscapeUnicode).
			ScriptTag(renderScriptTag)
	case render.FormatMicrodata:
		r := render.NewMicrodata().Pretty(renderPretty)
		if renderContainer != "" {
			r = r.Container(renderContainer)
		}
		renderer = r
	case render.FormatRDFa:
		r := render.NewRDFa().Pretty(renderPretty)
		if renderContainer != "" {
			r = r.Container(renderContainer)
		}
		renderer = r
	}

	if renderStrict {
		return render.Strict(renderer, validation.DefaultEngine()), nil
	}
	return renderer, nil
}

// renderExpanded runs each document through the JSON-LD expansion
// algorithm instead of a renderer. The offline loader keeps expansion
// working without network access to schema.org.
func renderExpanded(cmd *cobra.Command, args []string) error {
	processor := jsonld.NewProcessor(jsonld.NewOfflineLoader())

	var docs []string
	for _, path := range args {
		entities, err := loadEntities(cmd, path)
		if err != nil {
			return err
		}
		for _, e := range entities {
			expanded, err := processor.Expand(e)
			if err != nil {
				return fmt.Errorf("%s: expand: %w", displayName(path), err)
			}
			data, err := json.MarshalIndent(expanded, "", "  ")
			if err != nil {
				return fmt.Errorf("%s: encode expanded document: %w", displayName(path), err)
			}
			docs = append(docs, string(data))
		}
	}

	return writeOutput(cmd, strings.Join(docs, "\n")+"\n")
}

func writeOutput(cmd *cobra.Command, s string) error {
	if renderOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), s)
		return err
	}
	if err := os.WriteFile(renderOutput, []byte(s), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", renderOutput, err)
	}
	return nil
}
