package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Togather-Foundation/schemaorg/internal/config"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFormat  string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "schemaorg",
		Short: "schemaorg - model, validate, and serialize schema.org structured data",
		Long: `schemaorg works with schema.org structured data documents: JSON-LD or
YAML files describing entities such as Article, Person, and Organization.

The tool supports:
- Rendering entities as JSON-LD, Microdata, or RDFa markup
- Validating entities against the built-in rule set
- Extracting JSON-LD blocks from existing HTML pages
- Serving a live preview of all three serializations

Input files may be JSON-LD (.json, .jsonld) or YAML (.yaml, .yml);
pass - to read from stdin.`,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "profile file with default render options (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, console) (default: json)")
}

// loadConfig reads configuration from environment variables, then applies
// the global logging flags on top.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	return cfg, nil
}
