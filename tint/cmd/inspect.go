package cmd

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/indrora/pigment/pigment/affinity"
)

// inspectCmd shows the structural blocks of a container rather than its
// contents: header, offsets, protection, and the raw directory records.
var inspectCmd = &cobra.Command{
	Use:   "inspect container...",
	Short: "Investigate the structure of an Affinity container",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		for _, path := range args {
			container, err := affinity.Open(path)
			if err != nil {
				return err
			}
			explainContainer(container, verbose)
			container.Close()
		}
		return nil
	},
}

func explainContainer(container *affinity.Container, verbose bool) {
	header := container.Header()
	offsets := container.Offsets()
	directory := container.Directory()

	fmt.Println(container.Name())
	fmt.Printf("  filetype: %s  version: %d  flag: %#04x\n", header.FileType, header.Version, header.Flag)
	fmt.Printf("  directory at %d (%s), %d entries\n",
		offsets.DirectoryOffset, directory.Version.Tag(), len(directory.Entries))
	fmt.Printf("  file length: %d  data length: %d\n", offsets.FileLength, offsets.DataLength)
	fmt.Printf("  created: %s\n", offsets.CreationDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("  protection flags: %#08x\n", container.Protection().Flags)

	if verbose {
		for _, entry := range directory.Entries {
			spew.Dump(entry)
		}
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
