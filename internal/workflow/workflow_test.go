package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/medidonate/medidonate/internal/api"
	"github.com/medidonate/medidonate/internal/journal"
	"github.com/medidonate/medidonate/internal/models"
)

func TestDonorRegistration_SuccessResetsFields(t *testing.T) {
	var got models.DonorRegistration
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/donors" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		respond(http.StatusCreated, `{"id":7}`)(w, r)
	}))

	wf := NewDonorRegistration(client, WithLogger(discardLogger()))
	if err := wf.Edit(func(f *DonorFields) { *f = filledDonor() }); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	out, err := wf.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if out.Kind != KindSuccess || out.Message != MsgRegistered {
		t.Errorf("unexpected outcome %+v", out)
	}
	if wf.State() != StateSuccessShown {
		t.Errorf("expected success state, got %s", wf.State())
	}
	if wf.Fields() != (DonorFields{}) {
		t.Errorf("expected every field cleared, got %+v", wf.Fields())
	}
	if got.NationalID != "29801011234567" || got.CityID != "1" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestDonorRegistration_MissingFields(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	wf := NewDonorRegistration(client, WithLogger(discardLogger()))
	wf.Edit(func(f *DonorFields) {
		*f = filledDonor()
		f.Email = "  "
		f.Password = ""
	})

	_, err := wf.Submit(context.Background())

	var missingErr *MissingFieldsError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if want := []string{"email", "password"}; !reflect.DeepEqual(missingErr.Fields, want) {
		t.Errorf("expected %v, got %v", want, missingErr.Fields)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no request, got %d", calls.Load())
	}
	if wf.State() != StateEditing {
		t.Errorf("expected editing state, got %s", wf.State())
	}
}

func TestDonorRegistration_FailureKeepsFields(t *testing.T) {
	tests := []struct {
		name    string
		client  func(t *testing.T) *api.Client
		message string
	}{
		{
			name: "Server error field",
			client: func(t *testing.T) *api.Client {
				return newTestClient(t, respond(http.StatusConflict, `{"error":"Donor already registered"}`))
			},
			message: "Donor already registered",
		},
		{
			name: "Body without error field",
			client: func(t *testing.T) *api.Client {
				return newTestClient(t, respond(http.StatusInternalServerError, `<html>oops</html>`))
			},
			message: MsgRegistrationFailed,
		},
		{
			name:    "Unreachable service",
			client:  func(t *testing.T) *api.Client { return unreachableClient() },
			message: NetworkErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf := NewDonorRegistration(tt.client(t), WithLogger(discardLogger()))
			wf.Edit(func(f *DonorFields) { *f = filledDonor() })

			out, err := wf.Submit(context.Background())
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			if out.Kind != KindFailed || out.Message != tt.message {
				t.Errorf("unexpected outcome %+v", out)
			}
			if wf.State() != StateErrorShown {
				t.Errorf("expected error state, got %s", wf.State())
			}
			if wf.Fields() != filledDonor() {
				t.Errorf("expected fields kept, got %+v", wf.Fields())
			}
			if wf.Busy() {
				t.Error("expected gate released after failure")
			}
		})
	}
}

func TestDonationSubmission_AcceptedKeepsContinuityFields(t *testing.T) {
	client := newTestClient(t, respond(http.StatusOK, `{"donation_id":11,"status":"accepted"}`))

	wf := NewDonationSubmission(client, WithLogger(discardLogger()))
	wf.Edit(func(f *DonationFields) {
		*f = filledDonation()
		f.StorageRequirement = models.StorageRefrigerated
		f.PackagingUnopened = false
	})

	out, err := wf.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if out.Kind != KindSuccess || out.Message != MsgDonationAccepted {
		t.Errorf("unexpected outcome %+v", out)
	}

	want := NewDonationFields()
	want.DonorID = "29801011234567"
	want.DonationCity = "Alexandria"
	if got := wf.Fields(); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestDonationSubmission_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"Reason list", `{"status":"rejected","rejection_reasons":["Expires too soon","Packaging opened"]}`,
			"Donation rejected: Expires too soon, Packaging opened"},
		{"Single reason", `{"status":"rejected","rejection_reasons":"Expires too soon"}`,
			"Donation rejected: Expires too soon"},
		{"No reasons", `{"status":"rejected"}`, "Donation rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, respond(http.StatusOK, tt.body))
			wf := NewDonationSubmission(client, WithLogger(discardLogger()))
			wf.Edit(func(f *DonationFields) { *f = filledDonation() })

			out, err := wf.Submit(context.Background())
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			if out.Kind != KindRejected || out.Message != tt.message {
				t.Errorf("unexpected outcome %+v", out)
			}
			if wf.State() != StateErrorShown {
				t.Errorf("expected error state, got %s", wf.State())
			}
			if wf.Fields().MedicineName != "" {
				t.Error("expected a rejected donation to reset the form")
			}
			if wf.Fields().DonorID != "29801011234567" {
				t.Error("expected donor id carried over")
			}
		})
	}
}

func TestDonationSubmission_QuantityParsedBeforeSend(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	wf := NewDonationSubmission(client, WithLogger(discardLogger()))
	wf.Edit(func(f *DonationFields) {
		*f = filledDonation()
		f.Quantity = "twelve"
	})

	_, err := wf.Submit(context.Background())

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "quantity" {
		t.Fatalf("expected quantity FieldError, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("expected no request, got %d", calls.Load())
	}
	if wf.Busy() {
		t.Error("expected gate untouched")
	}
}

func TestDonationSubmission_SendsDateUnchanged(t *testing.T) {
	expiry := time.Now().AddDate(0, 5, 0).Format(models.DateLayout)

	var got map[string]any
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		respond(http.StatusOK, `{"status":"rejected","rejection_reasons":["Expires in under six months"]}`)(w, r)
	}))

	wf := NewDonationSubmission(client, WithLogger(discardLogger()))
	wf.Edit(func(f *DonationFields) {
		*f = filledDonation()
		f.ExpirationDate = expiry
		f.Quantity = " 12 "
	})

	if _, err := wf.Submit(context.Background()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if got["expiration_date"] != expiry {
		t.Errorf("expected expiration_date %q, got %v", expiry, got["expiration_date"])
	}
	if got["quantity"] != float64(12) {
		t.Errorf("expected numeric quantity 12, got %v", got["quantity"])
	}
	if got["packaging_unopened"] != true || got["storage_appropriate"] != true {
		t.Errorf("expected default attestations, got %v", got)
	}
	if got["storage_requirement"] != "room_temp" {
		t.Errorf("expected default storage, got %v", got["storage_requirement"])
	}
}

func TestHospitalRequest_Submit(t *testing.T) {
	var got models.RequestCreation
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/requests/create" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		respond(http.StatusCreated, `{}`)(w, r)
	}))

	wf := NewHospitalRequest(client, WithLogger(discardLogger()))
	wf.Edit(func(f *RequestFields) {
		*f = filledRequest()
		f.PatientStatus = models.PatientEmergency
	})

	out, err := wf.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if out.Message != MsgRequestSubmitted {
		t.Errorf("unexpected message %q", out.Message)
	}

	want := models.RequestCreation{
		HospitalID:        3,
		MedicineName:      "Insulin",
		RequestedQuantity: 20,
		HospitalCity:      "Giza",
		PatientStatus:     models.PatientEmergency,
	}
	if got != want {
		t.Errorf("expected payload %+v, got %+v", want, got)
	}

	fields := wf.Fields()
	if fields.HospitalID != "3" || fields.HospitalCity != "Giza" {
		t.Errorf("expected hospital carried over, got %+v", fields)
	}
	if fields.MedicineName != "" || fields.PatientStatus != models.PatientRoutine {
		t.Errorf("expected the rest reset to defaults, got %+v", fields)
	}
}

func TestHospitalRequest_InvalidNumbers(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*RequestFields)
		field string
	}{
		{"Hospital id", func(f *RequestFields) { f.HospitalID = "abc" }, "hospital_id"},
		{"Quantity", func(f *RequestFields) { f.RequestedQuantity = "1.5" }, "requested_quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wf := NewHospitalRequest(unreachableClient(), WithLogger(discardLogger()))
			wf.Edit(func(f *RequestFields) {
				*f = filledRequest()
				tt.edit(f)
			})

			_, err := wf.Begin()

			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) || fieldErr.Field != tt.field {
				t.Errorf("expected FieldError for %s, got %v", tt.field, err)
			}
		})
	}
}

func TestRequestFields_SelectHospital(t *testing.T) {
	hospitals := []models.Hospital{
		{ID: "1", Name: "Kasr Al Ainy", City: "Cairo"},
		{ID: "3", Name: "Sheikh Zayed", City: "Giza"},
	}

	f := NewRequestFields()
	f.SelectHospital("3", hospitals)
	if f.HospitalID != "3" || f.HospitalCity != "Giza" {
		t.Errorf("expected Giza selected, got %+v", f)
	}

	f.SelectHospital("99", hospitals)
	if f.HospitalID != "99" {
		t.Errorf("expected id updated, got %q", f.HospitalID)
	}
	if f.HospitalCity != "Giza" {
		t.Errorf("expected city unchanged for unknown hospital, got %q", f.HospitalCity)
	}
}

func TestWorkflow_SingleFlight(t *testing.T) {
	send := func(context.Context, DonorFields) Outcome { return Success("ok") }
	wf := New("test", filledDonor(), send, WithLogger(discardLogger()))

	snapshot, err := wf.Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if snapshot != filledDonor() {
		t.Errorf("unexpected snapshot %+v", snapshot)
	}

	if _, err := wf.Begin(); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy on second Begin, got %v", err)
	}
	if err := wf.Edit(func(f *DonorFields) { f.Name = "x" }); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy on Edit while submitting, got %v", err)
	}
	if !wf.Busy() || wf.State() != StateSubmitting {
		t.Errorf("expected busy submitting workflow, got %s", wf.State())
	}

	wf.Complete(wf.Send(context.Background(), snapshot))

	if wf.Busy() {
		t.Error("expected gate released")
	}
	if _, err := wf.Begin(); err == nil {
		t.Error("expected missing fields after reset")
	}
}

func TestWorkflow_EditAndDismiss(t *testing.T) {
	send := func(context.Context, DonorFields) Outcome {
		return Outcome{Kind: KindFailed, Message: "nope"}
	}
	wf := New("test", filledDonor(), send, WithLogger(discardLogger()))

	wf.Submit(context.Background())
	if wf.State() != StateErrorShown || wf.Outcome().Message != "nope" {
		t.Fatalf("expected error shown, got %s %+v", wf.State(), wf.Outcome())
	}

	wf.Dismiss()
	if wf.State() != StateEditing {
		t.Errorf("expected editing after dismiss, got %s", wf.State())
	}
	if wf.Fields() != filledDonor() {
		t.Error("expected dismiss to keep fields")
	}

	wf.Submit(context.Background())
	if err := wf.Edit(func(f *DonorFields) { f.Name = "Omar" }); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if wf.State() != StateEditing || wf.Outcome() != (Outcome{}) {
		t.Errorf("expected edit to clear the shown result, got %s %+v", wf.State(), wf.Outcome())
	}
	if wf.Fields().Name != "Omar" {
		t.Errorf("expected edit applied, got %q", wf.Fields().Name)
	}
}

func TestWorkflow_CompleteWithoutBeginIgnored(t *testing.T) {
	wf := New("test", filledDonor(), nil, WithLogger(discardLogger()))
	wf.Complete(Success("stray"))

	if wf.State() != StateEditing || wf.Fields() != filledDonor() {
		t.Errorf("expected stray completion ignored, got %s %+v", wf.State(), wf.Fields())
	}
}

func TestWorkflow_RecordsOutcome(t *testing.T) {
	rec := &memRecorder{}
	client := newTestClient(t, respond(http.StatusBadRequest, `{"error":"Email already in use"}`))

	wf := NewDonorRegistration(client, WithRecorder(rec), WithLogger(discardLogger()))
	wf.Edit(func(f *DonorFields) { *f = filledDonor() })
	wf.Submit(context.Background())

	entries := rec.all()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Workflow != DonorRegistrationName || entries[0].Kind != "failed" || entries[0].Message != "Email already in use" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
}

func TestWorkflow_RecordsToJournal(t *testing.T) {
	j, err := journal.NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	defer j.Close()
	if _, err := j.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	client := newTestClient(t, respond(http.StatusOK, `{"status":"accepted"}`))
	wf := NewDonationSubmission(client, WithRecorder(j), WithLogger(discardLogger()))
	wf.Edit(func(f *DonationFields) { *f = filledDonation() })
	wf.Submit(context.Background())

	entries, err := j.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Kind != "success" || entries[0].Workflow != DonationSubmissionName {
		t.Errorf("unexpected journal entries %+v", entries)
	}
}

func TestExplain(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&MissingFieldsError{Fields: []string{"email", "password"}}, "Please fill in all required fields (email, password)"},
		{&FieldError{Field: "quantity", Err: errors.New("bad")}, "Please enter a whole number for quantity"},
		{ErrBusy, "A submission is already in progress"},
		{errors.New("other"), "other"},
	}

	for _, tt := range tests {
		if got := Explain(tt.err); got != tt.want {
			t.Errorf("Explain(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
