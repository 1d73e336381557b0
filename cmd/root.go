package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"uidriver/internal/output"
	"uidriver/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "uidriver",
	Short: "Drive a desktop application through its accessibility tree",
	Long: `A CLI that locates controls in a target application's live UI tree using a
declarative descriptor catalog, then invokes actions, assigns values, or
extracts tables from them.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// A .env file can preseed UIDRIVER_DUMP, UIDRIVER_WINDOW_REGEX, and
	// UIDRIVER_LOG; flags still win.
	godotenv.Load()

	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("dump", envOr("UIDRIVER_DUMP", "descriptors.txt"), "Path to the descriptor dump file")
	rootCmd.PersistentFlags().String("window-regex", envOr("UIDRIVER_WINDOW_REGEX", ".*"), "Case-insensitive regex matched against window titles")
	rootCmd.PersistentFlags().String("log", envOr("UIDRIVER_LOG", ""), "Path to a JSON-lines diagnostic log (disabled when empty)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
