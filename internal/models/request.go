package models

import (
	"errors"
	"fmt"
)

// PatientStatus is the urgency attached to a hospital request.
type PatientStatus string

const (
	PatientEmergency PatientStatus = "Emergency"
	PatientRoutine   PatientStatus = "Routine"
)

// Valid returns true if the patient status is a known value.
func (p PatientStatus) Valid() bool {
	return p == PatientEmergency || p == PatientRoutine
}

// FulfillmentStatus is the server-side allocation state of a request.
// It only moves from pending to one of the terminal values, and only on
// the server.
type FulfillmentStatus string

const (
	FulfillmentPending     FulfillmentStatus = "pending"
	FulfillmentPartial     FulfillmentStatus = "partial"
	FulfillmentFulfilled   FulfillmentStatus = "fulfilled"
	FulfillmentUnfulfilled FulfillmentStatus = "unfulfilled"
)

// Valid returns true if the fulfillment status is a known value.
func (f FulfillmentStatus) Valid() bool {
	switch f {
	case FulfillmentPending, FulfillmentPartial, FulfillmentFulfilled, FulfillmentUnfulfilled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true once allocation has decided the request.
func (f FulfillmentStatus) IsTerminal() bool {
	return f.Valid() && f != FulfillmentPending
}

// HospitalRequest is a hospital's request for a quantity of medicine.
type HospitalRequest struct {
	ID                ID                `json:"request_id"`
	HospitalName      string            `json:"hospital_name"`
	HospitalCity      string            `json:"hospital_city"`
	MedicineName      string            `json:"medicine_name"`
	RequestedQuantity int               `json:"requested_quantity"`
	PatientStatus     PatientStatus     `json:"patient_status"`
	Status            FulfillmentStatus `json:"status"`
	RequestedAt       Timestamp         `json:"requested_at"`
}

// Validate checks the invariants of a decoded request.
func (r *HospitalRequest) Validate() error {
	var errs []error

	if r.RequestedQuantity <= 0 {
		errs = append(errs, fmt.Errorf("requested_quantity must be positive, got %d", r.RequestedQuantity))
	}

	if !r.PatientStatus.Valid() {
		errs = append(errs, fmt.Errorf("invalid patient_status: %q", r.PatientStatus))
	}

	if !r.Status.Valid() {
		errs = append(errs, fmt.Errorf("invalid status: %q", r.Status))
	}

	if len(errs) > 0 {
		return fmt.Errorf("request %s: %w", r.ID, errors.Join(errs...))
	}

	return nil
}

// DisplayHospital returns the hospital name, or N/A when the join is missing.
func (r *HospitalRequest) DisplayHospital() string {
	if r.HospitalName == "" {
		return "N/A"
	}
	return r.HospitalName
}

// RequestSummary holds the headline request counters.
type RequestSummary struct {
	Total           int     `json:"total_requests"`
	Fulfilled       int     `json:"fulfilled_requests"`
	Pending         int     `json:"pending_requests"`
	FulfillmentRate float64 `json:"fulfillment_rate"`
}

// RateLabel formats the fulfillment rate to one decimal place.
func (s RequestSummary) RateLabel() string {
	if s.FulfillmentRate == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", s.FulfillmentRate)
}

// Summarize reduces a request list to its summary counters. Partial and
// unfulfilled requests count toward the total only.
func Summarize(requests []HospitalRequest) RequestSummary {
	s := RequestSummary{Total: len(requests)}
	for _, r := range requests {
		switch r.Status {
		case FulfillmentFulfilled:
			s.Fulfilled++
		case FulfillmentPending:
			s.Pending++
		}
	}
	if s.Total > 0 {
		s.FulfillmentRate = float64(s.Fulfilled) / float64(s.Total) * 100
	}
	return s
}

// SummaryPayload is the wire shape of the summary endpoint, where every
// field may be absent or null.
type SummaryPayload struct {
	TotalRequests     *int     `json:"total_requests"`
	FulfilledRequests *int     `json:"fulfilled_requests"`
	PendingRequests   *int     `json:"pending_requests"`
	FulfillmentRate   *float64 `json:"fulfillment_rate"`
}

// Summary converts the payload, treating missing fields as zero.
func (p SummaryPayload) Summary() RequestSummary {
	var s RequestSummary
	if p.TotalRequests != nil {
		s.Total = *p.TotalRequests
	}
	if p.FulfilledRequests != nil {
		s.Fulfilled = *p.FulfilledRequests
	}
	if p.PendingRequests != nil {
		s.Pending = *p.PendingRequests
	}
	if p.FulfillmentRate != nil {
		s.FulfillmentRate = *p.FulfillmentRate
	}
	return s
}

// RequestCreation is the payload sent to create a hospital request.
type RequestCreation struct {
	HospitalID        int           `json:"hospital_id"`
	MedicineName      string        `json:"medicine_name"`
	RequestedQuantity int           `json:"requested_quantity"`
	HospitalCity      string        `json:"hospital_city"`
	PatientStatus     PatientStatus `json:"patient_status"`
}
