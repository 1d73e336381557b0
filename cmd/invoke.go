package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var invokeCmd = &cobra.Command{
	Use:     "invoke <key>",
	Aliases: []string{"press", "run"},
	Short:   "Locate a control and perform its preferred action",
	Args:    cobra.ExactArgs(1),
	RunE:    runInvoke,
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}

func runInvoke(cmd *cobra.Command, args []string) error {
	eng, closeLog, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	action, err := eng.Invoke(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Executed %s on '%s'\n", action, args[0])
	return nil
}
