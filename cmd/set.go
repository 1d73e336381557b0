package cmd

import (
	"github.com/spf13/cobra"

	"uidriver/internal/output"
)

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Assign a value to a data-entry or toggle control",
	Long: `Assign a value to the control for <key>. Toggle controls accept boolean
spellings (true/false, 1/0, yes/no, on/off); read-only-fronted fields are
entered via a simulated double-click before assignment.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	eng, closeLog, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	res, err := eng.Set(args[0], args[1])
	if err != nil {
		return err
	}
	return output.Print(res)
}
