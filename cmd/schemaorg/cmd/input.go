package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	sigyaml "sigs.k8s.io/yaml"

	"github.com/Togather-Foundation/schemaorg/schema"
)

// readInput returns the contents of path, reading the command's stdin
// when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// loadEntities reads one input and parses every entity document in it.
// YAML inputs are converted to JSON first: files by extension, stdin by
// sniffing for a JSON delimiter.
func loadEntities(cmd *cobra.Command, path string) ([]*schema.Entity, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(path), err)
	}

	if isYAML(path, data) {
		converted, err := sigyaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: convert YAML: %w", displayName(path), err)
		}
		data = converted
	}

	entities, err := schema.ParseAll(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(path), err)
	}
	return entities, nil
}

// isYAML decides whether the input needs the YAML-to-JSON conversion.
// Named files are judged by extension; stdin is treated as YAML when it
// does not open with a JSON object or array.
func isYAML(path string, data []byte) bool {
	if path != "-" {
		ext := strings.ToLower(filepath.Ext(path))
		return ext == ".yaml" || ext == ".yml"
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] != '{' && trimmed[0] != '['
}

// displayName labels an input in messages, mapping "-" to "stdin".
func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
