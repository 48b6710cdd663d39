// Package activity renders the local journal of submission outcomes.
package activity

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/medidonate/medidonate/internal/journal"
	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/util"
)

const colKind = 3

// View lists recent journal entries.
type View struct {
	clock   util.Clock
	styles  components.Styles
	enabled bool
	table   *components.Table

	entries []journal.Entry
	counts  map[string]int
	loading bool
	err     error
}

// NewView creates the activity view. A disabled view only explains that
// the journal is off.
func NewView(clock util.Clock, styles components.Styles, enabled bool) *View {
	columns := []components.Column{
		{Title: "Time", Width: 19},
		{Title: "When", Width: 14},
		{Title: "Workflow", Width: 20},
		{Title: "Kind", Width: 8},
		{Title: "Message", Width: 50},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(15)
	table.SetStyles(styles)
	table.Focus(true)

	v := &View{clock: clock, styles: styles, enabled: enabled, table: table}
	table.SetCellStyler(v.cellStyle)
	return v
}

// Enabled reports whether a journal backs the view.
func (v *View) Enabled() bool {
	return v.enabled
}

// SetLoading marks a read in flight.
func (v *View) SetLoading() {
	v.loading = true
}

// SetEntries records the read result.
func (v *View) SetEntries(entries []journal.Entry, counts map[string]int, err error) {
	v.loading = false
	v.err = err
	if err != nil {
		return
	}
	v.entries = entries
	v.counts = counts

	now := v.clock.Now()
	rows := make([][]string, len(entries))
	for i, e := range entries {
		rows[i] = []string{
			util.FormatDateTime(e.At.Local()),
			util.RelativeTimeString(e.At, now),
			e.Workflow,
			e.Kind,
			e.Message,
		}
	}
	v.table.SetRows(rows)
}

// Entries returns the listed entries.
func (v *View) Entries() []journal.Entry {
	return v.entries
}

// MoveUp moves the selection up.
func (v *View) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *View) MoveDown() {
	v.table.MoveDown()
}

func (v *View) cellStyle(_, col int, value string) (lipgloss.Style, bool) {
	if col != colKind {
		return lipgloss.Style{}, false
	}
	switch value {
	case "success":
		return v.styles.Success, true
	case "rejected":
		return v.styles.Warning, true
	default:
		return v.styles.Error, true
	}
}

// Render renders the activity view.
func (v *View) Render(width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("=== ACTIVITY ==="))
	b.WriteString("\n\n")

	if !v.enabled {
		b.WriteString(v.styles.Muted.Render("The activity journal is disabled."))
		return b.String()
	}

	b.WriteString(v.styles.Label.Render("Success: "))
	b.WriteString(v.styles.Success.Render(fmt.Sprintf("%d", v.counts["success"])))
	b.WriteString(v.styles.Muted.Render("  |  "))
	b.WriteString(v.styles.Label.Render("Rejected: "))
	b.WriteString(v.styles.Warning.Render(fmt.Sprintf("%d", v.counts["rejected"])))
	b.WriteString(v.styles.Muted.Render("  |  "))
	b.WriteString(v.styles.Label.Render("Failed: "))
	b.WriteString(v.styles.Error.Render(fmt.Sprintf("%d", v.counts["failed"])))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Label.Render("Loading..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: Failed to read the journal"))
		b.WriteString("\n")
	case v.table.Empty():
		b.WriteString(v.styles.Label.Render("No activity yet."))
		b.WriteString("\n")
	default:
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("Up/Down:Select  r:Reload"))

	return b.String()
}
