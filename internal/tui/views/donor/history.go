package donor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/medidonate/medidonate/internal/api"
	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/util"
)

const historyColStatus = 6

// HistoryView lists a donor's past donations.
type HistoryView struct {
	styles     components.Styles
	dateFormat string
	donorID    *components.Input
	table      *components.Table

	donations []models.Donation
	queried   string
	loading   bool
	err       error
}

// NewHistoryView creates the history view.
func NewHistoryView(styles components.Styles, dateFormat string) *HistoryView {
	columns := []components.Column{
		{Title: "ID", Width: 5},
		{Title: "Medicine", Width: 18},
		{Title: "Dosage", Width: 10},
		{Title: "Qty", Width: 5, Align: lipgloss.Right},
		{Title: "City", Width: 12},
		{Title: "Expires", Width: 12},
		{Title: "Status", Width: 9},
		{Title: "Reasons", Width: 30},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(10)
	table.SetStyles(styles)
	table.Focus(true)

	donorID := components.NewInput("Donor ID").SetRequired(true)
	donorID.SetStyles(styles)
	donorID.Focus(true)

	v := &HistoryView{styles: styles, dateFormat: dateFormat, donorID: donorID, table: table}
	table.SetCellStyler(v.cellStyle)
	return v
}

// HandleKey edits the donor id and moves through the table. It returns
// the donor id to fetch when enter is pressed.
func (v *HistoryView) HandleKey(key string) (string, bool) {
	switch key {
	case "enter":
		id := strings.TrimSpace(v.donorID.Value())
		if id == "" || v.loading {
			return "", false
		}
		return id, true
	case "up":
		v.table.MoveUp()
	case "down":
		v.table.MoveDown()
	default:
		v.donorID.HandleKey(key)
	}
	return "", false
}

// SetLoading marks a fetch for donorID in flight.
func (v *HistoryView) SetLoading(donorID string) {
	v.loading = true
	v.queried = donorID
	v.err = nil
}

// Loading reports whether a fetch is in flight.
func (v *HistoryView) Loading() bool {
	return v.loading
}

// SetDonations records the fetch result.
func (v *HistoryView) SetDonations(donations []models.Donation, err error) {
	v.loading = false
	v.err = err
	if err != nil {
		v.donations = nil
	} else {
		v.donations = donations
	}
	v.table.SetRows(v.rows())
}

// Donations returns the listed donations.
func (v *HistoryView) Donations() []models.Donation {
	return v.donations
}

func (v *HistoryView) rows() [][]string {
	rows := make([][]string, len(v.donations))
	for i, d := range v.donations {
		rows[i] = []string{
			"#" + d.ID.String(),
			d.MedicineName,
			d.Dosage,
			fmt.Sprintf("%d", d.Quantity),
			d.DonationCity,
			util.FormatDate(d.ExpirationDate.Time, v.dateFormat),
			d.Status,
			d.RejectionReasons.String(),
		}
	}
	return rows
}

func (v *HistoryView) cellStyle(_, col int, value string) (lipgloss.Style, bool) {
	if col != historyColStatus {
		return lipgloss.Style{}, false
	}
	if value == models.DonationAccepted {
		return v.styles.Success, true
	}
	return v.styles.Error, true
}

func (v *HistoryView) errorText() string {
	var statusErr *api.StatusError
	if errors.As(v.err, &statusErr) && statusErr.Message != "" {
		return "Error: " + statusErr.Message
	}
	return "Error: Failed to load donations"
}

// Render renders the history view.
func (v *HistoryView) Render(width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Donation history"))
	b.WriteString("\n\n")
	b.WriteString(v.donorID.Render())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Label.Render("Loading..."))
		b.WriteString("\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.errorText()))
		b.WriteString("\n")
	case v.queried == "":
		b.WriteString(v.styles.Muted.Render("Enter a donor id and press Enter."))
		b.WriteString("\n")
	case v.table.Empty():
		b.WriteString(v.styles.Label.Render("No donations found for donor " + v.queried + "."))
		b.WriteString("\n")
	default:
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	if width > 0 && width < 60 {
		b.WriteString(v.styles.Help.Render("Enter:Load  Up/Dn"))
	} else {
		b.WriteString(v.styles.Help.Render("Enter:Load  Up/Down:Select  Ctrl+N/P:Tab"))
	}

	return b.String()
}
