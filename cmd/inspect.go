package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/9Echo/Postcards/internal/caption"
	"github.com/9Echo/Postcards/internal/config"
	"github.com/9Echo/Postcards/internal/constants"
	"github.com/9Echo/Postcards/internal/postcard"
	"github.com/9Echo/Postcards/internal/rawimg"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the caption text and layout plan for a single photo",
	Long: `Inspect a photo without converting it: the caption text derived from
its EXIF metadata and the placement the converter would use.

Examples:
  # Human-readable report
  postcards inspect ./photos/IMG_1024.jpg

  # Output as JSON
  postcards inspect ./photos/IMG_1024.nef --json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().Bool("json", false, "Output as JSON")
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	jsonOutput := mustGetBool(cmd, "json")

	if !constants.IsSupported(path) {
		return fmt.Errorf("unsupported file type: %s", path)
	}

	cfg := config.Load()
	fonts := caption.NewSource(cfg.Fonts.Path)
	composer := postcard.New(cfg.Layout, caption.NewRenderer(cfg.Layout, fonts), rawimg.NewDecoder())

	inspection, err := composer.Inspect(path)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	if jsonOutput {
		return outputJSON(inspection)
	}

	outputHumanReadable(path, inspection)
	return nil
}

func outputJSON(data any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func outputHumanReadable(path string, inspection *postcard.Inspection) {
	fmt.Printf("Photo: %s\n", path)
	fmt.Println("────────────────────────────────────────")

	fmt.Println("\nSource:")
	fmt.Printf("  Dimensions:    %d x %d\n", inspection.SourceWidth, inspection.SourceHeight)

	fmt.Println("\nCaption:")
	fmt.Printf("  Date:          %s\n", inspection.Metadata.DateText)
	fmt.Printf("  Location:      %s\n", inspection.Metadata.LocationText)

	plan := inspection.Plan
	fmt.Println("\nLayout:")
	fmt.Printf("  Canvas:        %d x %d\n", plan.CanvasWidth, plan.CanvasHeight)
	fmt.Printf("  Rotated:       %v\n", plan.Rotated)
	fmt.Printf("  Content:       %d x %d at (%d, %d)\n",
		plan.ContentWidth, plan.ContentHeight, plan.ContentOffsetX, plan.ContentOffsetY)
	fmt.Printf("  Caption strip: %d px starting at y=%d\n", plan.StripHeight, plan.StripTop)
	fmt.Printf("  Output name:   %s\n", constants.OutputName(filepath.Base(path)))
}
