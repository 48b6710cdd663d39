package tui

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/medidonate/medidonate/internal/api"
	"github.com/medidonate/medidonate/internal/config"
	"github.com/medidonate/medidonate/internal/journal"
	"github.com/medidonate/medidonate/internal/models"
	"github.com/medidonate/medidonate/internal/util"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// fakeClient is an in-process service. Calls are counted under mu since
// commands may run on other goroutines.
type fakeClient struct {
	mu sync.Mutex

	stock     []models.StockItem
	requests  []models.HospitalRequest
	summary   models.RequestSummary
	hospitals []models.Hospital
	cities    []models.City
	donations []models.Donation
	result    models.DonationResult

	stockErr   error
	hospErr    error
	citiesErr  error
	processErr error
	createErr  error

	calls     map[string]int
	stockCity []string
	created   []models.RequestCreation
	donors    []models.DonorRegistration
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		stock: []models.StockItem{
			{ID: "1", MedicineName: "Paracetamol", Dosage: "500mg", QuantityAvailable: 40, LocationCity: "Cairo",
				ExpirationDate: models.Timestamp{Time: testNow.AddDate(1, 0, 0)}, StorageRequirement: models.StorageRoomTemp},
		},
		requests: []models.HospitalRequest{
			{ID: "7", HospitalName: "Kasr Al Ainy", HospitalCity: "Cairo", MedicineName: "Insulin",
				RequestedQuantity: 5, PatientStatus: models.PatientEmergency, Status: models.FulfillmentPending},
		},
		summary:   models.RequestSummary{Total: 1, Pending: 1},
		hospitals: []models.Hospital{{ID: "1", Name: "Kasr Al Ainy", City: "Cairo"}},
		cities:    []models.City{{ID: "9", Name: "Damietta"}},
		result:    models.DonationResult{DonationID: "11", Status: models.DonationAccepted},
		calls:     map[string]int{},
	}
}

func (f *fakeClient) count(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeClient) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeClient) RegisterDonor(_ context.Context, reg models.DonorRegistration) error {
	f.count("RegisterDonor")
	f.mu.Lock()
	f.donors = append(f.donors, reg)
	f.mu.Unlock()
	return nil
}

func (f *fakeClient) SubmitDonation(_ context.Context, _ models.DonationSubmission) (models.DonationResult, error) {
	f.count("SubmitDonation")
	return f.result, nil
}

func (f *fakeClient) CreateRequest(_ context.Context, req models.RequestCreation) error {
	f.count("CreateRequest")
	f.mu.Lock()
	f.created = append(f.created, req)
	f.mu.Unlock()
	return f.createErr
}

func (f *fakeClient) ProcessRequests(_ context.Context) error {
	f.count("ProcessRequests")
	return f.processErr
}

func (f *fakeClient) ListStock(_ context.Context) ([]models.StockItem, error) {
	f.count("ListStock")
	return f.stock, f.stockErr
}

func (f *fakeClient) StockByCity(_ context.Context, city string) ([]models.StockItem, error) {
	f.count("StockByCity")
	f.mu.Lock()
	f.stockCity = append(f.stockCity, city)
	f.mu.Unlock()

	var out []models.StockItem
	for _, s := range f.stock {
		if s.LocationCity == city {
			out = append(out, s)
		}
	}
	return out, f.stockErr
}

func (f *fakeClient) ListRequests(_ context.Context) ([]models.HospitalRequest, error) {
	f.count("ListRequests")
	return f.requests, nil
}

func (f *fakeClient) RequestSummary(_ context.Context) (models.RequestSummary, error) {
	f.count("RequestSummary")
	return f.summary, nil
}

func (f *fakeClient) DonationsByDonor(_ context.Context, _ string) ([]models.Donation, error) {
	f.count("DonationsByDonor")
	return f.donations, nil
}

func (f *fakeClient) ListHospitals(_ context.Context) ([]models.Hospital, error) {
	f.count("ListHospitals")
	return f.hospitals, f.hospErr
}

func (f *fakeClient) ListCities(_ context.Context) ([]models.City, error) {
	f.count("ListCities")
	return f.cities, f.citiesErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestJournal returns a migrated in-memory journal closed at test end.
func newTestJournal(t *testing.T) *journal.Journal {
	t.Helper()

	j, err := journal.NewInMemory()
	if err != nil {
		t.Fatalf("creating test journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })

	if _, err := j.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test journal: %v", err)
	}
	return j
}

// newTestApp creates an App backed by a fake client and an in-memory
// journal. The window is set to 120x40 and marked ready.
func newTestApp(t *testing.T, c *fakeClient) *App {
	t.Helper()

	app := New(context.Background(), Deps{
		Client:  c,
		Config:  config.Default(),
		Journal: newTestJournal(t),
		Clock:   util.NewFixedClock(testNow),
		Logger:  discardLogger(),
	})

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

// press sends a key and runs every command it produces to completion.
func press(t *testing.T, app *App, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := app.Update(msg)
	drain(t, app, cmd)
}

// typeText presses one rune key per character.
func typeText(t *testing.T, app *App, s string) {
	t.Helper()
	for _, r := range s {
		press(t, app, keyMsg(string(r)))
	}
}

// drain runs cmd, feeds its messages back into Update and repeats until
// nothing is left. Batches are expanded; tea.Quit stops the loop.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 100 {
			t.Fatal("command queue did not settle")
		}
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return
		default:
			_, follow := app.Update(msg)
			queue = append(queue, follow)
		}
	}
}

// newTestServer serves a small fixed data set over the real wire format.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	routes := map[string]string{
		"GET /api/stock/status": `{"stock":[
			{"stock_id":1,"medicine_name":"Paracetamol","dosage":"500mg","quantity_available":40,
			 "location_city":"Cairo","expiration_date":"2027-06-01","storage_requirement":"room_temp"}]}`,
		"GET /api/requests": `{"requests":[
			{"request_id":7,"hospital_name":"Kasr Al Ainy","hospital_city":"Cairo","medicine_name":"Insulin",
			 "requested_quantity":5,"patient_status":"Emergency","status":"pending"}]}`,
		"GET /api/requests/summary": `{"total_requests":1,"fulfilled_requests":0,"pending_requests":1,"fulfillment_rate":0}`,
		"POST /api/requests/process": `{"message":"ok"}`,
		"POST /api/requests/create":  `{"message":"created"}`,
		"GET /api/hospitals":         `{"hospitals":[{"hospital_id":1,"hospital_name":"Kasr Al Ainy","city":"Cairo"}]}`,
		"GET /api/cities":            `{"cities":[{"city_id":1,"city_name":"Cairo"}]}`,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.Method+" "+r.URL.Path]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"error":"not found"}`)
			return
		}
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// newE2EApp creates an App for end-to-end testing via teatest. It talks
// to newTestServer through the real API client. Unlike newTestApp, it
// does not set a window size since teatest sends one.
func newE2EApp(t *testing.T) *App {
	t.Helper()

	srv := newTestServer(t)
	cfg := config.Default()
	cfg.API.BaseURL = srv.URL + "/api"

	return New(context.Background(), Deps{
		Client:  api.New(cfg.API, discardLogger()),
		Config:  cfg,
		Journal: newTestJournal(t),
		Clock:   util.NewFixedClock(testNow),
		Logger:  discardLogger(),
	})
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
