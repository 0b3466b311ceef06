package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/indrora/pigment/pigment/affinity"
)

var listCmd = &cobra.Command{
	Use:   "list container...",
	Short: "List the entries inside Affinity containers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			container, err := affinity.Open(path)
			if err != nil {
				return err
			}
			printDirectory(cmd.OutOrStdout(), container)
			container.Close()
		}
		return nil
	},
}

func printDirectory(w io.Writer, container *affinity.Container) {
	directory := container.Directory()
	modified := directory.CreationDate.Format("2006-01-02 15:04:05")

	rows := [][]string{{"File Name", "Modified", "Size", "Stored", "Codec"}}
	for _, entry := range directory.Entries {
		rows = append(rows, []string{
			entry.Filename,
			modified,
			strconv.FormatUint(entry.SizeOriginal, 10),
			strconv.FormatUint(entry.SizeStored, 10),
			entry.Compression.Algorithm.String(),
		})
	}
	printColumns(w, rows)
}

// printColumns left-aligns text cells and right-aligns numeric cells into
// padded columns.
func printColumns(w io.Writer, rows [][]string) {
	widths := make([]int, 0)
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, len(cell))
			} else if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if isNumeric(cell) {
				cells[i] = strings.Repeat(" ", widths[i]-len(cell)) + cell
			} else {
				cells[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, " "), " "))
	}
}

func isNumeric(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func init() {
	rootCmd.AddCommand(listCmd)
}
