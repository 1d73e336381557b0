package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"uidriver/internal/uia"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the descriptor keys in the catalog",
	Long: `List every descriptor in the dump, one line per entry:

  - key: Name [Type]

Surrounding tooling parses the leading "- ", so the format is stable
regardless of --format.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	for _, key := range cat.Keys() {
		d, _ := cat.Get(key)
		fmt.Println(formatListEntry(d.Key, d.Name, d.ControlType))
	}
	return nil
}

func formatListEntry(key, name string, t uia.ControlType) string {
	line := "- " + key
	if name != "" {
		line += ": " + name
	}
	if t != uia.TypeUnknown {
		line += fmt.Sprintf(" [%s]", t)
	}
	return line
}
