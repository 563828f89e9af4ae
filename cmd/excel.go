package cmd

import (
	"fmt"

	"github.com/pharmaflow/formulex/internal/pipeline"
	"github.com/spf13/cobra"
)

var jsonPath string

var excelCmd = &cobra.Command{
	Use:   "excel",
	Short: "Render a workbook from a persisted extraction",
	Long: `Render a workbook from an existing extracted_data.json without re-running
extraction. The workbook is written next to the JSON file and named after its
parent directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		xlsxPath, err := pipeline.RenderWorkbook(jsonPath)
		if err != nil {
			return fmt.Errorf("render workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", xlsxPath)
		return nil
	},
}

func init() {
	excelCmd.Flags().StringVar(&jsonPath, "json-path", "", "Path to an extracted_data.json file")
	excelCmd.MarkFlagRequired("json-path")
	rootCmd.AddCommand(excelCmd)
}
