package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/indrora/pigment/pigment/affinity"
)

var extractCmd = &cobra.Command{
	Use:   "extract container [entry...]",
	Short: "Extract entries from an Affinity container",
	Long: `Extract the named entries (or every entry, when none are named)
into the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputDir, _ := cmd.Flags().GetString("output")

		container, err := affinity.Open(args[0])
		if err != nil {
			return err
		}
		defer container.Close()

		names := args[1:]
		if len(names) == 0 {
			names = container.Names()
		}
		for _, name := range names {
			if err := extractEntry(container, name, outputDir); err != nil {
				return err
			}
		}
		return nil
	},
}

func extractEntry(container *affinity.Container, name, outputDir string) error {
	data, err := container.Read(name)
	if err != nil {
		return err
	}
	// Entry names are flat; scrub any path-looking content before touching
	// the filesystem.
	dest := filepath.Join(outputDir, filepath.Base(filepath.Clean("/"+name)))
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", dest)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("output", "o", ".", "Directory to extract into")
}
