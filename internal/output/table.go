package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/opmodel/aliasresolve/internal/alias"
)

// Table is a bordered table rendered with lipgloss.
type Table struct {
	headers []string
	rows    [][]string
	style   func(row, col int) lipgloss.Style
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row adds a row to the table.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// CellStyle overrides the style of body cells. row is zero-based.
func (t *Table) CellStyle(fn func(row, col int) lipgloss.Style) *Table {
	t.style = fn
	return t
}

// String renders the table.
func (t *Table) String() string {
	header := lipgloss.NewStyle().Bold(true).Foreground(ColorCyan)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorDimGray)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if t.style != nil {
				return t.style(row, col)
			}
			return lipgloss.NewStyle()
		})
	for _, row := range t.rows {
		tbl.Row(row...)
	}
	return tbl.String()
}

// RenderAliasTable renders aliases sorted by key.
func RenderAliasTable(aliases alias.Table) string {
	t := NewTable("ALIAS", "TARGET")
	for _, name := range aliases.Keys() {
		t.Row(name, aliases[name])
	}
	return t.String()
}

// RenderResultsTable renders resolution results with their outcome names.
func RenderResultsTable(results []alias.Result, statuses []string) string {
	t := NewTable("SPECIFIER", "STATUS", "PATH")
	for i, r := range results {
		t.Row(r.Specifier, statuses[i], r.Path)
	}
	return t.CellStyle(func(row, col int) lipgloss.Style {
		if col == 1 && row >= 0 && row < len(statuses) {
			return statusStyle(statuses[row])
		}
		return lipgloss.NewStyle()
	}).String()
}
