package cmd

import (
	"fmt"
	"os"

	"github.com/pharmaflow/formulex/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "formulex",
	Short: "Extract structured formulary data from PDF documents",
	Long: `Formulex recovers the category → subcategory → row hierarchy from
pharmaceutical formulary PDFs, along with the printed table of contents and a
list of anomalies it could not place, and writes the result as interchange
JSON plus a formatted workbook.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("formulex %s\n", version.String()))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
