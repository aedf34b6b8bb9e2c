// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the DenimHouse
// admin console.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/denimhouse-admin/internal/model"
	"github.com/jeranaias/denimhouse-admin/internal/ui/styles"
	"github.com/jeranaias/denimhouse-admin/internal/util"
)

// =============================================================================
// DATA TABLE
// =============================================================================

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

// Table renders rows of data with a selectable cursor and a pagination
// footer. Cell widths are display-width aware so CJK product names line up.
type Table struct {
	columns []Column
	rows    [][]string
	cursor  int
	page    model.Page

	theme *styles.Theme
}

// NewTable creates a table with the given columns.
func NewTable(theme *styles.Theme, columns []Column) *Table {
	return &Table{
		columns: columns,
		theme:   theme,
	}
}

// SetRows replaces the table content and clamps the cursor.
func (t *Table) SetRows(rows [][]string, page model.Page) {
	t.rows = rows
	t.page = page
	if t.cursor >= len(rows) {
		t.cursor = len(rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// Rows returns the current row count.
func (t *Table) Rows() int {
	return len(t.rows)
}

// Cursor returns the selected row index.
func (t *Table) Cursor() int {
	return t.cursor
}

// Page returns the pagination block for the current content.
func (t *Table) Page() model.Page {
	return t.page
}

// MoveUp moves the cursor up one row.
func (t *Table) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// MoveDown moves the cursor down one row.
func (t *Table) MoveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
	}
}

// GotoTop moves the cursor to the first row.
func (t *Table) GotoTop() {
	t.cursor = 0
}

// GotoBottom moves the cursor to the last row.
func (t *Table) GotoBottom() {
	if len(t.rows) > 0 {
		t.cursor = len(t.rows) - 1
	}
}

// View renders the table.
func (t *Table) View() string {
	var b strings.Builder

	// Header
	headerCells := make([]string, len(t.columns))
	for i, col := range t.columns {
		headerCells[i] = util.PadRight(util.TruncateWidth(col.Title, col.Width), col.Width)
	}
	b.WriteString(t.theme.TableHeader.Render(strings.Join(headerCells, "  ")))
	b.WriteString("\n")

	// Rows
	for rowIdx, row := range t.rows {
		cells := make([]string, len(t.columns))
		for i, col := range t.columns {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			cells[i] = util.PadRight(util.TruncateWidth(value, col.Width), col.Width)
		}
		line := strings.Join(cells, "  ")
		if rowIdx == t.cursor {
			b.WriteString(t.theme.TableRowSelected.Render("> " + line))
		} else {
			b.WriteString(t.theme.TableRow.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if len(t.rows) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true)
		b.WriteString(empty.Render("  (no data)"))
		b.WriteString("\n")
	}

	// Pagination footer
	if t.page.Last > 1 {
		footer := "page " + strconv.Itoa(t.page.Current) + "/" + strconv.Itoa(t.page.Last) +
			"  (" + strconv.Itoa(t.page.Total) + " total)  [h] prev  [l] next"
		b.WriteString(t.theme.TableFooter.Render(footer))
	}

	return b.String()
}
