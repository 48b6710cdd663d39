// Package admin provides the administration views: stock, requests and
// the processing trigger.
package admin

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/util"
)

// StockView lists donated stock with its derived status. Status and expiry
// badges are recomputed from the clock on every render.
type StockView struct {
	clock      util.Clock
	styles     components.Styles
	dateFormat string
	table      *components.Table
	items      []models.StockItem
	cities     []string
	cityIdx    int // 0 = all cities
	loading    bool
	loaded     bool
	err        error
}

// Stock table columns.
const (
	stockColID = iota
	stockColMedicine
	stockColDosage
	stockColQuantity
	stockColCity
	stockColExpires
	stockColStorage
	stockColStatus
)

// NewStockView creates a stock view. cities are the filter choices.
func NewStockView(clock util.Clock, styles components.Styles, dateFormat string, cities []string) *StockView {
	columns := []components.Column{
		{Title: "ID", Width: 5},
		{Title: "Medicine", Width: 20},
		{Title: "Dosage", Width: 10},
		{Title: "Qty", Width: 7, Align: lipgloss.Right},
		{Title: "City", Width: 12},
		{Title: "Expires", Width: 24},
		{Title: "Storage", Width: 7},
		{Title: "Status", Width: 12},
	}

	table := components.NewTable(columns)
	table.SetVisibleRows(15)
	table.SetStyles(styles)
	table.Focus(true)

	v := &StockView{
		clock:      clock,
		styles:     styles,
		dateFormat: dateFormat,
		table:      table,
		cities:     cities,
	}
	table.SetCellStyler(v.cellStyle)
	return v
}

// City returns the selected city filter, or "" for all cities.
func (v *StockView) City() string {
	if v.cityIdx == 0 || v.cityIdx > len(v.cities) {
		return ""
	}
	return v.cities[v.cityIdx-1]
}

// CycleCity moves to the next city filter and returns it.
func (v *StockView) CycleCity() string {
	v.cityIdx = (v.cityIdx + 1) % (len(v.cities) + 1)
	return v.City()
}

// SetLoading marks a fetch in flight.
func (v *StockView) SetLoading() {
	v.loading = true
	v.err = nil
}

// Loading reports whether a fetch is in flight.
func (v *StockView) Loading() bool {
	return v.loading
}

// SetItems replaces the listed stock.
func (v *StockView) SetItems(items []models.StockItem) {
	v.items = items
	v.loading = false
	v.loaded = true
	v.err = nil
}

// SetError records a failed fetch. The previous items stay listed.
func (v *StockView) SetError(err error) {
	v.loading = false
	v.err = err
}

// Loaded reports whether a fetch has ever succeeded.
func (v *StockView) Loaded() bool {
	return v.loaded
}

// Items returns the listed stock.
func (v *StockView) Items() []models.StockItem {
	return v.items
}

// MoveUp moves the selection up.
func (v *StockView) MoveUp() {
	v.table.MoveUp()
}

// MoveDown moves the selection down.
func (v *StockView) MoveDown() {
	v.table.MoveDown()
}

// ExpiryLabel renders the expiry column: the date plus an "Nd left" badge
// inside the expiring window.
func ExpiryLabel(item models.StockItem, days int, layout string) string {
	date := util.FormatDate(item.ExpirationDate.Time, layout)
	switch {
	case item.ExpirationDate.IsZero():
		return date
	case days < 0:
		return date + " (expired)"
	case days <= models.ExpiringWindowDays:
		return fmt.Sprintf("%s (%dd left)", date, days)
	default:
		return date
	}
}

func (v *StockView) rows() [][]string {
	now := v.clock.Now()
	rows := make([][]string, len(v.items))
	for i, item := range v.items {
		days := item.DaysUntilExpiry(now)

		qty := fmt.Sprintf("%d", item.QuantityAvailable)
		if item.IsLow() {
			qty += " !"
		}

		rows[i] = []string{
			"#" + item.ID.String(),
			item.MedicineName,
			item.Dosage,
			qty,
			item.LocationCity,
			ExpiryLabel(item, days, v.dateFormat),
			item.StorageRequirement.Label(),
			models.ClassifyStock(item, now).String(),
		}
	}
	return rows
}

func (v *StockView) cellStyle(row, col int, value string) (lipgloss.Style, bool) {
	switch col {
	case stockColQuantity:
		if strings.HasSuffix(value, "!") {
			return v.styles.Warning, true
		}
	case stockColStatus:
		return v.statusStyle(value)
	}
	return lipgloss.Style{}, false
}

func (v *StockView) statusStyle(status string) (lipgloss.Style, bool) {
	switch status {
	case models.StockOutOfStock.String(), models.StockCritical.String():
		return v.styles.Error, true
	case models.StockExpiring.String():
		return v.styles.Warning, true
	case models.StockGood.String():
		return v.styles.Success, true
	}
	return lipgloss.Style{}, false
}

// Render renders the stock view.
func (v *StockView) Render(width int) string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("=== STOCK STATUS ==="))
	b.WriteString("\n\n")

	overview := models.OverviewStock(v.items, v.clock.Now())
	b.WriteString(v.styles.Label.Render("Total Items: "))
	b.WriteString(v.styles.Value.Render(fmt.Sprintf("%d", overview.Total)))
	b.WriteString(v.styles.Muted.Render("  |  "))
	b.WriteString(v.styles.Label.Render("Expiring Soon: "))
	b.WriteString(v.styles.Warning.Render(fmt.Sprintf("%d", overview.ExpiringSoon)))
	b.WriteString(v.styles.Muted.Render("  |  "))
	b.WriteString(v.styles.Label.Render("Low Stock: "))
	b.WriteString(v.styles.Error.Render(fmt.Sprintf("%d", overview.LowStock)))
	b.WriteString("\n")

	city := v.City()
	if city == "" {
		city = "All cities"
	}
	b.WriteString(v.styles.Label.Render("City: "))
	b.WriteString(v.styles.Value.Render(city))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: Failed to load stock"))
		b.WriteString("\n\n")
	}

	v.table.SetRows(v.rows())

	switch {
	case v.loading:
		b.WriteString(v.styles.Label.Render("Loading..."))
		b.WriteString("\n")
	case v.table.Empty():
		b.WriteString(v.styles.Label.Render("No stock found."))
		b.WriteString("\n")
	default:
		b.WriteString(v.table.Render())
	}

	b.WriteString("\n")
	if width > 0 && width < 60 {
		b.WriteString(v.styles.Help.Render("Up/Dn  c:City  r:Reload"))
	} else {
		b.WriteString(v.styles.Help.Render("Up/Down:Select  c:Filter city  r:Reload  Ctrl+N/P:Tab"))
	}

	return b.String()
}
