// Package cliutil provides small output helpers shared by the CLI commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// RenderTable renders a fixed-width table with a header row. Columns are
// sized to their widest cell and separated by two spaces; the last column
// is written unpadded so lines carry no trailing spaces.
func RenderTable(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				Writef(w, "  ")
			}
			if i == len(widths)-1 {
				Writef(w, "%s", cell)
			} else {
				Writef(w, "%-*s", widths[i], cell)
			}
		}
		Writef(w, "\n")
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
}
