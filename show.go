package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"gridedit/internal/grid"
)

var (
	showBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	showCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	showHeaderStyle = showCellStyle.Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
)

// renderView prints v as a bordered table.
func renderView(w io.Writer, v grid.View) error {
	labels := make([]string, len(v.Headers))
	for i, h := range v.Headers {
		labels[i] = h.Label
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(showBorderStyle).
		Headers(labels...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return showHeaderStyle
			}
			if row < len(v.Rows) && col < len(v.Rows[row].Cells) && v.Rows[row].Cells[col].Text.Emphasis {
				return showCellStyle.Bold(true)
			}
			return showCellStyle
		})

	for _, r := range v.Rows {
		values := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			values[i] = c.Text.Value
		}
		t.Row(values...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
