// Package batch walks an input directory and converts every supported
// photograph into a postcard in the output directory.
package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/9Echo/Postcards/internal/constants"
)

// Composer converts a single source file into a postcard at dstPath.
type Composer interface {
	Compose(srcPath, dstPath string) error
}

// Options control one batch run.
type Options struct {
	// DryRun lists the planned conversions without writing anything.
	DryRun bool

	// Limit caps the number of files attempted, 0 means no limit.
	Limit int
}

// Result summarizes one batch run.
type Result struct {
	Attempted int
	Converted int
	Outputs   []string
	Errors    []error
}

// Runner drives the per-file conversion over a directory.
type Runner struct {
	composer Composer
}

func New(composer Composer) *Runner {
	return &Runner{composer: composer}
}

// Run converts every supported file in inputDir into outputDir, in
// directory order. Failures are contained per file: the batch always
// continues and reports them in the result.
func (r *Runner) Run(inputDir, outputDir string, opts Options) (*Result, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var selected []string
	for _, entry := range entries {
		if entry.IsDir() || !constants.IsSupported(entry.Name()) {
			continue
		}
		selected = append(selected, entry.Name())
		if opts.Limit > 0 && len(selected) == opts.Limit {
			break
		}
	}

	result := &Result{}
	if len(selected) == 0 {
		return result, nil
	}

	if opts.DryRun {
		for _, name := range selected {
			result.Attempted++
			result.Outputs = append(result.Outputs, filepath.Join(outputDir, constants.OutputName(name)))
		}
		return result, nil
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	bar := progressbar.NewOptions(len(selected),
		progressbar.OptionSetDescription("Converting photos"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("photos"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	for _, name := range selected {
		result.Attempted++
		srcPath := filepath.Join(inputDir, name)
		dstPath := filepath.Join(outputDir, constants.OutputName(name))

		if err := r.composer.Compose(srcPath, dstPath); err != nil {
			result.Errors = append(result.Errors, err)
			bar.Add(1)
			continue
		}

		result.Converted++
		result.Outputs = append(result.Outputs, dstPath)
		bar.Add(1)
	}
	fmt.Println() // New line after progress bar

	return result, nil
}
