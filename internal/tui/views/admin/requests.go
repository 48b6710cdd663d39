package admin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/util"
)

const (
	reqColPriority = 5
	reqColStatus   = 6
)

// RequestsView lists hospital requests with the server summary and the
// locally computed tally side by side.
type RequestsView struct {
	styles     components.Styles
	dateFormat string
	table      *components.Table

	requests   []models.HospitalRequest
	summary    models.RequestSummary
	hasSummary bool

	loadingRequests bool
	loadingSummary  bool
	requestsErr     error
	summaryErr      error
}

// NewRequestsView creates a requests view.
func NewRequestsView(styles components.Styles, dateFormat string) *RequestsView {
	columns := []components.Column{
		{Title: "ID", Width: 5},
		{Title: "Hospital", Width: 20},
		{Title: "City", Width: 12},
		{Title: "Medicine", Width: 18},
		{Title: "Qty", Width: 5, Align: lipgloss.Right},
		{Title: "Priority", Width: 10},
		{Title: "Status", Width: 11},
		{Title: "Date", Width: 12},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(12)
	table.SetStyles(styles)
	table.Focus(true)

	v := &RequestsView{styles: styles, dateFormat: dateFormat, table: table}
	table.SetCellStyler(v.cellStyle)
	return v
}

// SetLoading marks both fetches in flight.
func (v *RequestsView) SetLoading() {
	v.loadingRequests = true
	v.loadingSummary = true
	v.requestsErr = nil
	v.summaryErr = nil
}

// Loading reports whether either fetch is in flight.
func (v *RequestsView) Loading() bool {
	return v.loadingRequests || v.loadingSummary
}

// SetRequests records the result of the request list fetch.
func (v *RequestsView) SetRequests(requests []models.HospitalRequest, err error) {
	v.loadingRequests = false
	v.requestsErr = err
	if err == nil {
		v.requests = requests
		v.table.SetRows(v.rows())
	}
}

// SetSummary records the result of the summary fetch.
func (v *RequestsView) SetSummary(summary models.RequestSummary, err error) {
	v.loadingSummary = false
	v.summaryErr = err
	if err == nil {
		v.summary = summary
		v.hasSummary = true
	}
}

// Requests returns the listed requests.
func (v *RequestsView) Requests() []models.HospitalRequest {
	return v.requests
}

// MoveUp moves the selection up.
func (v *RequestsView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *RequestsView) MoveDown() {
	v.table.MoveDown()
}

func (v *RequestsView) rows() [][]string {
	rows := make([][]string, len(v.requests))
	for i := range v.requests {
		r := &v.requests[i]
		rows[i] = []string{
			"#" + r.ID.String(),
			r.DisplayHospital(),
			r.HospitalCity,
			r.MedicineName,
			fmt.Sprintf("%d", r.RequestedQuantity),
			string(r.PatientStatus),
			string(r.Status),
			util.FormatDate(r.RequestedAt.Time, v.dateFormat),
		}
	}
	return rows
}

func (v *RequestsView) cellStyle(row, col int, value string) (lipgloss.Style, bool) {
	switch col {
	case reqColPriority:
		if value == string(models.PatientEmergency) {
			return v.styles.Error.Bold(true), true
		}
	case reqColStatus:
		switch models.FulfillmentStatus(value) {
		case models.FulfillmentFulfilled:
			return v.styles.Success, true
		case models.FulfillmentPartial, models.FulfillmentPending:
			return v.styles.Warning, true
		case models.FulfillmentUnfulfilled:
			return v.styles.Error, true
		}
	}
	return lipgloss.Style{}, false
}

func (v *RequestsView) renderSummary(title string, s models.RequestSummary) string {
	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(title))
	b.WriteString("\n")
	b.WriteString(v.styles.Label.Render("Total:       ") + v.styles.Value.Render(fmt.Sprintf("%d", s.Total)) + "\n")
	b.WriteString(v.styles.Label.Render("Fulfilled:   ") + v.styles.Success.Render(fmt.Sprintf("%d", s.Fulfilled)) + "\n")
	b.WriteString(v.styles.Label.Render("Pending:     ") + v.styles.Warning.Render(fmt.Sprintf("%d", s.Pending)) + "\n")
	b.WriteString(v.styles.Label.Render("Fulfillment: ") + v.styles.Value.Render(s.RateLabel()))
	return b.String()
}

// Render renders the requests view.
func (v *RequestsView) Render(width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("=== HOSPITAL REQUESTS ==="))
	b.WriteString("\n\n")

	var server string
	switch {
	case v.loadingSummary:
		server = v.styles.Subtitle.Render("SERVER SUMMARY") + "\n" + v.styles.Label.Render("Loading...")
	case v.summaryErr != nil:
		server = v.styles.Subtitle.Render("SERVER SUMMARY") + "\n" + v.styles.Error.Render("Unavailable")
	default:
		server = v.renderSummary("SERVER SUMMARY", v.summary)
	}
	local := v.renderSummary("LOCAL TALLY", models.Summarize(v.requests))

	sideWidth := width
	if sideWidth <= 0 {
		sideWidth = 80
	}
	b.WriteString(components.SideBySide(server, local, sideWidth, 4))
	b.WriteString("\n\n")

	if v.requestsErr != nil {
		b.WriteString(v.styles.Error.Render("Error: Failed to load requests"))
		b.WriteString("\n\n")
	}

	switch {
	case v.loadingRequests:
		b.WriteString(v.styles.Label.Render("Loading..."))
		b.WriteString("\n")
	case v.table.Empty():
		b.WriteString(v.styles.Label.Render("No requests found."))
		b.WriteString("\n")
	default:
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("Up/Down:Select  r:Reload  Ctrl+N/P:Tab"))

	return b.String()
}
