// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// CellStyler picks a style for one cell. Returning false keeps the row style.
type CellStyler func(row, col int, value string) (lipgloss.Style, bool)

// Table is a simple scrolling table component.
type Table struct {
	columns     []Column
	rows        [][]string
	selected    int
	offset      int
	visibleRows int
	focused     bool
	styler      CellStyler
	styles      Styles
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:     columns,
		rows:        [][]string{},
		visibleRows: 10,
		styles:      DefaultStyles(),
	}
}

// SetRows sets the table data and keeps the selection in range.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	if t.selected >= len(rows) {
		t.selected = len(rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	if t.offset > t.selected {
		t.offset = t.selected
	}
}

// SetVisibleRows sets the number of visible rows.
func (t *Table) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	t.visibleRows = n
}

// SetStyles replaces the table styles.
func (t *Table) SetStyles(s Styles) {
	t.styles = s
}

// SetCellStyler installs per-cell styling.
func (t *Table) SetCellStyler(fn CellStyler) {
	t.styler = fn
}

// Focus sets the table focus state.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the currently selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// SelectedRow returns the currently selected row data.
func (t *Table) SelectedRow() []string {
	if t.selected >= 0 && t.selected < len(t.rows) {
		return t.rows[t.selected]
	}
	return nil
}

// MoveUp moves the selection up.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.selected--
		if t.selected < t.offset {
			t.offset = t.selected
		}
	}
}

// MoveDown moves the selection down.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.selected++
		if t.selected >= t.offset+t.visibleRows {
			t.offset = t.selected - t.visibleRows + 1
		}
	}
}

// PageUp moves up one page.
func (t *Table) PageUp() {
	t.selected -= t.visibleRows
	if t.selected < 0 {
		t.selected = 0
	}
	t.offset = t.selected
}

// PageDown moves down one page.
func (t *Table) PageDown() {
	t.selected += t.visibleRows
	if t.selected >= len(t.rows) {
		t.selected = len(t.rows) - 1
	}
	if t.selected < 0 {
		t.selected = 0
	}
	t.offset = t.selected - t.visibleRows + 1
	if t.offset < 0 {
		t.offset = 0
	}
}

// GoToTop goes to the first row.
func (t *Table) GoToTop() {
	t.selected = 0
	t.offset = 0
}

// GoToBottom goes to the last row.
func (t *Table) GoToBottom() {
	if len(t.rows) > 0 {
		t.selected = len(t.rows) - 1
		t.offset = t.selected - t.visibleRows + 1
		if t.offset < 0 {
			t.offset = 0
		}
	}
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder

	totalWidth := 0
	for _, col := range t.columns {
		totalWidth += col.Width + 3
	}

	b.WriteString(t.renderHeader())
	b.WriteString("\n")
	b.WriteString(t.styles.Border.Render(strings.Repeat("-", totalWidth)))
	b.WriteString("\n")

	endIdx := t.offset + t.visibleRows
	if endIdx > len(t.rows) {
		endIdx = len(t.rows)
	}

	for i := t.offset; i < endIdx; i++ {
		b.WriteString(t.renderRow(i))
		b.WriteString("\n")
	}

	if len(t.rows) > t.visibleRows {
		b.WriteString(t.styles.Border.Render(strings.Repeat("-", totalWidth)))
		b.WriteString("\n")
		b.WriteString(t.styles.Muted.Render(fmt.Sprintf("Rows %d-%d of %d", t.offset+1, endIdx, len(t.rows))))
	}

	return b.String()
}

func (t *Table) renderHeader() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = t.styles.TableHeader.Render(fit(col.Title, col.Width, col.Align))
	}
	return " " + strings.Join(parts, " | ") + " "
}

func (t *Table) renderRow(idx int) string {
	cells := t.rows[idx]
	isSelected := idx == t.selected && t.focused

	rowStyle := t.styles.Row
	if (idx-t.offset)%2 == 1 {
		rowStyle = t.styles.RowAlt
	}

	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		text := fit(cell, col.Width, col.Align)

		style := rowStyle
		switch {
		case isSelected:
			style = t.styles.Selected
		case t.styler != nil:
			if s, ok := t.styler(idx, i, cell); ok {
				style = s
			}
		}
		parts[i] = style.Render(text)
	}

	return " " + strings.Join(parts, " | ") + " "
}

// fit truncates and pads a cell to width.
func fit(cell string, width int, align lipgloss.Position) string {
	runes := []rune(cell)
	if len(runes) > width {
		if width <= 1 {
			cell = string(runes[:width])
		} else {
			cell = string(runes[:width-1]) + "…"
		}
	}

	pad := width - lipgloss.Width(cell)
	if pad <= 0 {
		return cell
	}

	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + cell
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
	default:
		return cell + strings.Repeat(" ", pad)
	}
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.rows)
}
