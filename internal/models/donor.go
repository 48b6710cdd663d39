package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DonorRegistration is the payload sent to register a donor. The national
// id is the donor's identity; uniqueness is checked by the service.
type DonorRegistration struct {
	NationalID string `json:"nationalId"`
	Name       string `json:"name"`
	CityID     string `json:"cityId"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// DonationSubmission is the payload sent when a donor offers medicine.
// The expiration date should be at least six months out; the service
// decides.
type DonationSubmission struct {
	DonorID            string             `json:"donor_id"`
	MedicineName       string             `json:"medicine_name"`
	Dosage             string             `json:"dosage"`
	Quantity           int                `json:"quantity"`
	ExpirationDate     string             `json:"expiration_date"`
	StorageRequirement StorageRequirement `json:"storage_requirement"`
	PackagingUnopened  bool               `json:"packaging_unopened"`
	StorageAppropriate bool               `json:"storage_appropriate"`
	DonationCity       string             `json:"donation_city"`
}

// DonationAccepted is the status the service returns for accepted donations.
const DonationAccepted = "accepted"

// Reasons is a list of rejection reasons. The service sends either a
// single string or an array of strings.
type Reasons []string

// UnmarshalJSON accepts a string, an array of strings, or null.
func (r *Reasons) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}

	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("decoding rejection reasons: %w", err)
		}
		*r = list
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding rejection reasons: %w", err)
	}
	if s == "" {
		*r = nil
		return nil
	}
	*r = Reasons{s}
	return nil
}

// String joins the reasons for display.
func (r Reasons) String() string {
	return strings.Join(r, ", ")
}

// DonationResult is the service's verdict on a submitted donation.
type DonationResult struct {
	DonationID       ID      `json:"donation_id"`
	Status           string  `json:"status"`
	RejectionReasons Reasons `json:"rejection_reasons"`
}

// Accepted reports whether the donation entered stock.
func (d DonationResult) Accepted() bool {
	return d.Status == DonationAccepted
}

// Donation is a past donation as listed for a donor.
type Donation struct {
	ID                 ID                 `json:"donation_id"`
	DonorID            string             `json:"donor_id"`
	MedicineName       string             `json:"medicine_name"`
	Dosage             string             `json:"dosage"`
	Quantity           int                `json:"quantity"`
	ExpirationDate     Timestamp          `json:"expiration_date"`
	StorageRequirement StorageRequirement `json:"storage_requirement"`
	DonationCity       string             `json:"donation_city"`
	Status             string             `json:"status"`
	RejectionReasons   Reasons            `json:"rejection_reasons"`
	SubmittedAt        Timestamp          `json:"submitted_at"`
}

// Hospital is a registered hospital that can request medicine.
type Hospital struct {
	ID   ID     `json:"hospital_id"`
	Name string `json:"hospital_name"`
	City string `json:"city"`
}

// Label is the text shown when choosing a hospital.
func (h Hospital) Label() string {
	return h.Name + " - " + h.City
}

// FindHospital looks up a hospital by id. Numeric ids compare by value.
func FindHospital(hospitals []Hospital, id string) (Hospital, bool) {
	id = strings.TrimSpace(id)
	want, numErr := strconv.Atoi(id)
	for _, h := range hospitals {
		if numErr == nil {
			if got, err := h.ID.Int(); err == nil && got == want {
				return h, true
			}
			continue
		}
		if h.ID.String() == id {
			return h, true
		}
	}
	return Hospital{}, false
}

// City is a city known to the service.
type City struct {
	ID   ID     `json:"city_id"`
	Name string `json:"city_name"`
}
