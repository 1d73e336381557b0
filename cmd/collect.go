package cmd

import (
	"github.com/spf13/cobra"

	"uidriver/internal/output"
)

var collectCmd = &cobra.Command{
	Use:     "collect <key>",
	Aliases: []string{"table"},
	Short:   "Extract tabular content from a control",
	Long: `Extract headers and rows from the control for <key>. The result is printed
as a single JSON line with "Headers" and "Rows" fields so surrounding tooling
can read it from the last line of stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	eng, closeLog, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	table, err := eng.Collect(args[0])
	if err != nil {
		return err
	}
	// Always compact JSON, regardless of --format: consumers parse the
	// final stdout line.
	return output.PrintJSON(table)
}
