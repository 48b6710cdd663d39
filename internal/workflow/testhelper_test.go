package workflow

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/medidonate/medidonate/internal/api"
	"github.com/medidonate/medidonate/internal/config"
	"github.com/medidonate/medidonate/internal/journal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestClient returns an API client backed by an httptest server.
func newTestClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return api.New(config.APIConfig{BaseURL: srv.URL + "/api"}, discardLogger())
}

// unreachableClient points at a port nothing listens on.
func unreachableClient() *api.Client {
	return api.New(config.APIConfig{BaseURL: "http://127.0.0.1:1/api"}, discardLogger())
}

func respond(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}
}

// memRecorder collects recorded entries.
type memRecorder struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (r *memRecorder) Record(_ context.Context, e journal.Entry) (journal.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *memRecorder) all() []journal.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]journal.Entry(nil), r.entries...)
}

func filledDonor() DonorFields {
	return DonorFields{
		NationalID: "29801011234567",
		Name:       "Mona Adel",
		CityID:     "1",
		Email:      "mona@example.org",
		Password:   "s3cret",
	}
}

func filledDonation() DonationFields {
	f := NewDonationFields()
	f.DonorID = "29801011234567"
	f.MedicineName = "Amoxicillin"
	f.Dosage = "250mg"
	f.Quantity = "12"
	f.ExpirationDate = "2026-05-01"
	f.DonationCity = "Alexandria"
	return f
}

func filledRequest() RequestFields {
	f := NewRequestFields()
	f.HospitalID = "3"
	f.HospitalCity = "Giza"
	f.MedicineName = "Insulin"
	f.RequestedQuantity = "20"
	return f
}
