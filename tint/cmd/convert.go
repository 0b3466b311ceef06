package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/indrora/pigment/pigment/palette"
)

var convertCmd = &cobra.Command{
	Use:   "convert input output",
	Short: "Convert a palette between formats",
	Long: `Convert reads the input palette and writes it in the format implied
by the output file's extension. Formats are provided by codec packages
registered with the palette registry.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := palette.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := palette.WriteFile(args[1], data); err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d swatches -> %s\n", args[0], data.Count(), args[1])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
