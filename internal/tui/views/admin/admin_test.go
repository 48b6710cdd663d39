package admin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/tui/components"
	"github.com/medidonate/medidonate/internal/util"
	"github.com/medidonate/medidonate/internal/workflow"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func stockItems() []models.StockItem {
	return []models.StockItem{
		{
			ID: "1", MedicineName: "Amoxicillin", Dosage: "500mg", QuantityAvailable: 40,
			LocationCity: "Cairo", ExpirationDate: models.Timestamp{Time: testNow.AddDate(1, 0, 0)},
			StorageRequirement: models.StorageRoomTemp,
		},
		{
			ID: "2", MedicineName: "Insulin", Dosage: "100IU", QuantityAvailable: 5,
			LocationCity: "Giza", ExpirationDate: models.Timestamp{Time: testNow.AddDate(0, 0, 60)},
			StorageRequirement: models.StorageRefrigerated,
		},
		{
			ID: "3", MedicineName: "Paracetamol", Dosage: "1g", QuantityAvailable: 0,
			LocationCity: "Cairo", ExpirationDate: models.Timestamp{Time: testNow.AddDate(0, 6, 0)},
			StorageRequirement: models.StorageRoomTemp,
		},
	}
}

func newStockView() *StockView {
	return NewStockView(util.NewFixedClock(testNow), components.DefaultStyles(), util.DisplayDateFormat, []string{"Cairo", "Giza"})
}

func TestStockView_EmptyRender(t *testing.T) {
	v := newStockView()
	v.SetItems(nil)
	out := v.Render(120)

	for _, want := range []string{"STOCK STATUS", "Total Items:", "All cities", "No stock found."} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestStockView_Rows(t *testing.T) {
	v := newStockView()
	v.SetItems(stockItems())
	rows := v.rows()

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	tests := []struct {
		row    int
		qty    string
		status string
	}{
		{0, "40", "Good"},
		{1, "5 !", "Expiring"},
		{2, "0 !", "Out of Stock"},
	}

	for _, tt := range tests {
		if got := rows[tt.row][stockColQuantity]; got != tt.qty {
			t.Errorf("row %d quantity = %q, want %q", tt.row, got, tt.qty)
		}
		if got := rows[tt.row][stockColStatus]; got != tt.status {
			t.Errorf("row %d status = %q, want %q", tt.row, got, tt.status)
		}
	}

	if got := rows[1][stockColStorage]; got != models.StorageRefrigerated.Label() {
		t.Errorf("storage = %q, want %q", got, models.StorageRefrigerated.Label())
	}
	if got := rows[1][stockColExpires]; !strings.Contains(got, "(60d left)") {
		t.Errorf("expiry = %q, want a days-left badge", got)
	}
}

func TestStockView_StatusFollowsClock(t *testing.T) {
	clock := util.NewFixedClock(testNow)
	v := NewStockView(clock, components.DefaultStyles(), util.DisplayDateFormat, nil)
	v.SetItems(stockItems()[:1])

	if got := v.rows()[0][stockColStatus]; got != "Good" {
		t.Fatalf("status = %q, want Good", got)
	}

	clock.Advance(340 * 24 * time.Hour)
	if got := v.rows()[0][stockColStatus]; got != "Critical" {
		t.Errorf("status after advancing = %q, want Critical", got)
	}
}

func TestExpiryLabel(t *testing.T) {
	item := models.StockItem{ExpirationDate: models.Timestamp{Time: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}}

	tests := []struct {
		name string
		days int
		want string
	}{
		{"far", 200, "Mar 02, 2026"},
		{"window edge", 90, "Mar 02, 2026 (90d left)"},
		{"soon", 3, "Mar 02, 2026 (3d left)"},
		{"expired", -1, "Mar 02, 2026 (expired)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpiryLabel(item, tt.days, util.DisplayDateFormat); got != tt.want {
				t.Errorf("ExpiryLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStockView_CycleCity(t *testing.T) {
	v := newStockView()

	want := []string{"Cairo", "Giza", ""}
	for i, w := range want {
		if got := v.CycleCity(); got != w {
			t.Errorf("cycle %d = %q, want %q", i, got, w)
		}
	}
}

func TestStockView_ErrorKeepsItems(t *testing.T) {
	v := newStockView()
	v.SetItems(stockItems())
	v.SetLoading()
	if !v.Loading() {
		t.Fatal("Loading() = false after SetLoading")
	}

	v.SetError(errors.New("boom"))
	if v.Loading() {
		t.Error("Loading() = true after SetError")
	}
	if len(v.Items()) != 3 {
		t.Errorf("items = %d, want previous 3 kept", len(v.Items()))
	}

	out := v.Render(120)
	if !strings.Contains(out, "Error: Failed to load stock") {
		t.Error("render should show the load error")
	}
	if !strings.Contains(out, "Amoxicillin") {
		t.Error("render should still list previous items")
	}
}

func TestStockView_CompactHelp(t *testing.T) {
	v := newStockView()
	if !strings.Contains(v.Render(50), "c:City") {
		t.Error("expected compact help on a narrow terminal")
	}
	if !strings.Contains(v.Render(120), "c:Filter city") {
		t.Error("expected full help on a wide terminal")
	}
}

func testRequests() []models.HospitalRequest {
	at := models.Timestamp{Time: testNow}
	return []models.HospitalRequest{
		{ID: "1", HospitalName: "Kasr Al Ainy", HospitalCity: "Cairo", MedicineName: "Insulin", RequestedQuantity: 20, PatientStatus: models.PatientEmergency, Status: models.FulfillmentFulfilled, RequestedAt: at},
		{ID: "2", HospitalCity: "Giza", MedicineName: "Amoxicillin", RequestedQuantity: 5, PatientStatus: models.PatientRoutine, Status: models.FulfillmentPending, RequestedAt: at},
	}
}

func TestRequestsView_Render(t *testing.T) {
	v := NewRequestsView(components.DefaultStyles(), util.DisplayDateFormat)
	v.SetLoading()
	v.SetRequests(testRequests(), nil)
	v.SetSummary(models.RequestSummary{Total: 7, Fulfilled: 3, Pending: 4, FulfillmentRate: 42.857}, nil)

	out := v.Render(120)
	for _, want := range []string{"HOSPITAL REQUESTS", "SERVER SUMMARY", "LOCAL TALLY", "42.9%", "50.0%", "Kasr Al Ainy", "N/A", "Emergency"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRequestsView_SummaryUnavailable(t *testing.T) {
	v := NewRequestsView(components.DefaultStyles(), util.DisplayDateFormat)
	v.SetLoading()
	v.SetRequests(testRequests(), nil)
	v.SetSummary(models.RequestSummary{}, errors.New("boom"))

	if v.Loading() {
		t.Error("Loading() = true after both fetches finished")
	}

	out := v.Render(120)
	if !strings.Contains(out, "Unavailable") {
		t.Error("render should mark the server summary unavailable")
	}
	if !strings.Contains(out, "LOCAL TALLY") {
		t.Error("local tally should still render")
	}
}

func TestRequestsView_LoadError(t *testing.T) {
	v := NewRequestsView(components.DefaultStyles(), util.DisplayDateFormat)
	v.SetLoading()
	v.SetRequests(nil, errors.New("boom"))
	v.SetSummary(models.RequestSummary{}, nil)

	out := v.Render(120)
	if !strings.Contains(out, "Error: Failed to load requests") {
		t.Error("render should show the load error")
	}
	if !strings.Contains(out, "No requests found.") {
		t.Error("render should show the empty state")
	}
}

type fakeProcessor struct {
	err error
}

func (f fakeProcessor) ProcessRequests(context.Context) error {
	return f.err
}

func TestProcessView_Lifecycle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := workflow.NewProcessor(fakeProcessor{}, workflow.WithLogger(logger))
	v := NewProcessView(components.DefaultStyles(), p)

	if !strings.Contains(v.Render(100), "Ready.") {
		t.Error("expected ready state")
	}

	if !v.Start() {
		t.Fatal("Start() = false on an idle processor")
	}
	if v.Start() {
		t.Error("second Start() should be refused while busy")
	}
	if !strings.Contains(v.Render(100), "Processing...") {
		t.Error("expected processing state")
	}

	v.Finish(p.Process(context.Background()))
	if v.Busy() {
		t.Error("Busy() = true after Finish")
	}

	out, shown := v.Outcome()
	if !shown || out.Kind != workflow.KindSuccess {
		t.Errorf("Outcome() = %+v, %v", out, shown)
	}
	if !strings.Contains(v.Render(100), workflow.MsgProcessed) {
		t.Error("expected success message")
	}
}

func TestProcessView_Failure(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	p := workflow.NewProcessor(fakeProcessor{err: errors.New("boom")}, workflow.WithLogger(logger))
	v := NewProcessView(components.DefaultStyles(), p)

	v.Start()
	v.Finish(p.Process(context.Background()))

	if !strings.Contains(v.Render(100), workflow.MsgProcessFailed) {
		t.Error("expected generic failure message")
	}
	if !v.Start() {
		t.Error("Start() should succeed again after a failed run")
	}
}
