package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// profile holds default render options loaded from the --config file.
// Pointer fields distinguish "not set" from an explicit false.
type profile struct {
	Render struct {
		Format        string `yaml:"format"`
		Pretty        *bool  `yaml:"pretty"`
		Compact       *bool  `yaml:"compact"`
		ScriptTag     *bool  `yaml:"script_tag"`
		EscapeSlashes *bool  `yaml:"escape_slashes"`
		EscapeUnicode *bool  `yaml:"escape_unicode"`
		Container     string `yaml:"container"`
		Strict        *bool  `yaml:"strict"`
	} `yaml:"render"`
}

func loadProfile(path string) (*profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	var p profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}

// applyRenderProfile fills render flag values from the --config profile.
// Flags set on the command line always win over the profile.
func applyRenderProfile(cmd *cobra.Command) error {
	if configPath == "" {
		return nil
	}
	p, err := loadProfile(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	r := p.Render
	if r.Format != "" && !flags.Changed("format") {
		renderFormat = r.Format
	}
	if r.Pretty != nil && !flags.Changed("pretty") {
		renderPretty = *r.Pretty
	}
	if r.Compact != nil && !flags.Changed("compact") {
		renderCompact = *r.Compact
	}
	if r.ScriptTag != nil && !flags.Changed("script-tag") {
		renderScriptTag = *r.ScriptTag
	}
	if r.EscapeSlashes != nil && !flags.Changed("escape-slashes") {
		renderEscapeSlashes = *r.EscapeSlashes
	}
	if r.EscapeUnicode != nil && !flags.Changed("escape-unicode") {
		renderEscapeUnicode = *r.EscapeUnicode
	}
	if r.Container != "" && !flags.Changed("container") {
		renderContainer = r.Container
	}
	if r.Strict != nil && !flags.Changed("strict") {
		renderStrict = *r.Strict
	}
	return nil
}
