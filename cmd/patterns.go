package cmd

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"uidriver/internal/annotate"
	"uidriver/internal/output"
)

var patternsCmd = &cobra.Command{
	Use:     "patterns <key>",
	Aliases: []string{"diagnose"},
	Short:   "Show a control's declared versus live capabilities",
	Long: `Locate the control for <key> and report its live name, type, bounds, and
supported patterns next to what the catalog declared, to diagnose stale
descriptor entries. With --annotate, the control's bounds are drawn onto a
screenshot for visual verification.`,
	Args: cobra.ExactArgs(1),
	RunE: runPatterns,
}

func init() {
	rootCmd.AddCommand(patternsCmd)
	patternsCmd.Flags().String("annotate", "", "PNG screenshot to draw the located control onto")
	patternsCmd.Flags().String("out", "annotated.png", "Output path for the annotated image")
	patternsCmd.Flags().Int("origin-x", 0, "Screen X of the screenshot's top-left corner")
	patternsCmd.Flags().Int("origin-y", 0, "Screen Y of the screenshot's top-left corner")
}

func runPatterns(cmd *cobra.Command, args []string) error {
	eng, closeLog, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	diag, err := eng.Diagnose(args[0])
	if err != nil {
		return err
	}

	if screenshot, _ := cmd.Flags().GetString("annotate"); screenshot != "" {
		outPath, _ := cmd.Flags().GetString("out")
		originX, _ := cmd.Flags().GetInt("origin-x")
		originY, _ := cmd.Flags().GetInt("origin-y")
		boxes := []annotate.Box{{Rect: diag.Bounds, Label: diag.Key}}
		if err := annotate.MarkFile(screenshot, outPath, image.Point{X: originX, Y: originY}, boxes); err != nil {
			return err
		}
		fmt.Printf("Annotated image written to %s\n", outPath)
	}

	return output.Print(diag)
}
