package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tint",
	Short: "Tint is a color palette interchange tool",
	Long: `Tint converts color palettes between formats and digs swatch data
out of Affinity asset containers.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Generate markdown documentation for tint",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./docs/tint"
		if len(args) == 1 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0o775); err != nil {
			return err
		}
		return doc.GenMarkdownTree(rootCmd, dir)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write detailed information to the terminal")
	rootCmd.AddCommand(docsCmd)
}
