package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "postcards",
	Short: "A CLI tool for turning photos into printable postcards",
	Long: `Postcards batch-converts photographs into a standardized A6 print layout:
each photo is aspect-fitted onto a fixed 300 DPI canvas above a caption
strip showing the capture date and location taken from its EXIF metadata.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
