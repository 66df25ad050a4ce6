package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/9Echo/Postcards/internal/batch"
	"github.com/9Echo/Postcards/internal/caption"
	"github.com/9Echo/Postcards/internal/config"
	"github.com/9Echo/Postcards/internal/postcard"
	"github.com/9Echo/Postcards/internal/rawimg"
)

var convertCmd = &cobra.Command{
	Use:   "convert [input-dir] [output-dir]",
	Short: "Convert a directory of photos into postcards",
	Long: `Convert every supported photo in the input directory into a postcard
JPEG in the output directory. Each photo is aspect-fitted onto the print
canvas above a caption strip showing its capture date and location.

Directories default to POSTCARDS_INPUT_DIR and POSTCARDS_OUTPUT_DIR when
the arguments are omitted.

Supported formats: .jpg, .jpeg, .nef, .raw, .tiff, .png

Examples:
  # Convert a folder
  postcards convert ./photos ./out

  # Preview without writing anything
  postcards convert ./photos ./out --dry-run

  # Convert the first 5 photos with a custom caption font
  postcards convert ./photos ./out --limit 5 --font ./hand.ttf`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().Bool("dry-run", false, "List planned conversions without writing files")
	convertCmd.Flags().Int("limit", 0, "Maximum number of photos to convert (0 = all)")
	convertCmd.Flags().String("font", "", "Caption font file, tried before the builtin faces")
}

func runConvert(cmd *cobra.Command, args []string) error {
	dryRun := mustGetBool(cmd, "dry-run")
	limit := mustGetInt(cmd, "limit")
	fontPath := mustGetString(cmd, "font")

	cfg := config.Load()

	inputDir := cfg.Paths.InputDir
	outputDir := cfg.Paths.OutputDir
	if len(args) > 0 {
		inputDir = args[0]
	}
	if len(args) > 1 {
		outputDir = args[1]
	}
	if inputDir == "" {
		return errors.New("input directory is required (argument or POSTCARDS_INPUT_DIR)")
	}
	if outputDir == "" {
		return errors.New("output directory is required (argument or POSTCARDS_OUTPUT_DIR)")
	}

	fmt.Printf("Converting photos in: %s\n", inputDir)
	fmt.Printf("Writing postcards to: %s\n", outputDir)
	if dryRun {
		fmt.Println("Mode: DRY RUN (no files will be written)")
	}
	fmt.Println()

	fonts := caption.NewSource(fontPath, cfg.Fonts.Path)
	composer := postcard.New(cfg.Layout, caption.NewRenderer(cfg.Layout, fonts), rawimg.NewDecoder())

	result, err := batch.New(composer).Run(inputDir, outputDir, batch.Options{
		DryRun: dryRun,
		Limit:  limit,
	})
	if err != nil {
		return fmt.Errorf("failed to convert photos: %w", err)
	}

	if dryRun {
		for _, out := range result.Outputs {
			fmt.Printf("  would write %s\n", out)
		}
		fmt.Printf("\nPlanned: %d postcards\n", result.Attempted)
		return nil
	}

	fmt.Printf("\nProcessed: %d photos\n", result.Attempted)
	fmt.Printf("Converted: %d postcards\n", result.Converted)

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors: %d\n", len(result.Errors))
		for _, err := range result.Errors {
			fmt.Printf("  - %v\n", err)
		}
	}

	return nil
}
