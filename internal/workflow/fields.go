package workflow

import (
	"strconv"
	"strings"

	"github.com/medidonate/medidonate/internal/models"
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// missing returns the names whose values are blank, in order.
func missing(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if blank(pairs[i+1]) {
			out = append(out, pairs[i])
		}
	}
	return out
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &FieldError{Field: field, Err: err}
	}
	return n, nil
}

// DonorFields are the donor registration form values.
type DonorFields struct {
	NationalID string
	Name       string
	CityID     string
	Email      string
	Password   string
}

func (f DonorFields) Missing() []string {
	return missing(
		"nationalId", f.NationalID,
		"name", f.Name,
		"cityId", f.CityID,
		"email", f.Email,
		"password", f.Password,
	)
}

func (f DonorFields) Check() error {
	return nil
}

// Carry clears every field.
func (f DonorFields) Carry() DonorFields {
	return DonorFields{}
}

// Payload builds the registration body.
func (f DonorFields) Payload() models.DonorRegistration {
	return models.DonorRegistration{
		NationalID: f.NationalID,
		Name:       f.Name,
		CityID:     f.CityID,
		Email:      f.Email,
		Password:   f.Password,
	}
}

// DonationFields are the donation submission form values. Quantity is
// kept as entered and parsed on send.
type DonationFields struct {
	DonorID            string
	MedicineName       string
	Dosage             string
	Quantity           string
	ExpirationDate     string
	StorageRequirement models.StorageRequirement
	PackagingUnopened  bool
	StorageAppropriate bool
	DonationCity       string
}

// NewDonationFields returns an empty form with the default storage and
// both attestations checked.
func NewDonationFields() DonationFields {
	return DonationFields{
		StorageRequirement: models.StorageRoomTemp,
		PackagingUnopened:  true,
		StorageAppropriate: true,
	}
}

func (f DonationFields) Missing() []string {
	return missing(
		"donor_id", f.DonorID,
		"medicine_name", f.MedicineName,
		"dosage", f.Dosage,
		"quantity", f.Quantity,
		"expiration_date", f.ExpirationDate,
		"storage_requirement", string(f.StorageRequirement),
		"donation_city", f.DonationCity,
	)
}

func (f DonationFields) Check() error {
	_, err := parseInt("quantity", f.Quantity)
	return err
}

// Carry resets the form but keeps the donor and the city.
func (f DonationFields) Carry() DonationFields {
	next := NewDonationFields()
	next.DonorID = f.DonorID
	next.DonationCity = f.DonationCity
	return next
}

// Payload builds the submission body. Check must have passed.
func (f DonationFields) Payload() (models.DonationSubmission, error) {
	qty, err := parseInt("quantity", f.Quantity)
	if err != nil {
		return models.DonationSubmission{}, err
	}

	return models.DonationSubmission{
		DonorID:            f.DonorID,
		MedicineName:       f.MedicineName,
		Dosage:             f.Dosage,
		Quantity:           qty,
		ExpirationDate:     f.ExpirationDate,
		StorageRequirement: f.StorageRequirement,
		PackagingUnopened:  f.PackagingUnopened,
		StorageAppropriate: f.StorageAppropriate,
		DonationCity:       f.DonationCity,
	}, nil
}

// RequestFields are the hospital request form values.
type RequestFields struct {
	HospitalID        string
	MedicineName      string
	RequestedQuantity string
	HospitalCity      string
	PatientStatus     models.PatientStatus
}

// NewRequestFields returns an empty form with routine priority.
func NewRequestFields() RequestFields {
	return RequestFields{PatientStatus: models.PatientRoutine}
}

func (f RequestFields) Missing() []string {
	return missing(
		"hospital_id", f.HospitalID,
		"medicine_name", f.MedicineName,
		"requested_quantity", f.RequestedQuantity,
		"hospital_city", f.HospitalCity,
		"patient_status", string(f.PatientStatus),
	)
}

func (f RequestFields) Check() error {
	if _, err := parseInt("hospital_id", f.HospitalID); err != nil {
		return err
	}
	_, err := parseInt("requested_quantity", f.RequestedQuantity)
	return err
}

// Carry resets the form but keeps the selected hospital.
func (f RequestFields) Carry() RequestFields {
	next := NewRequestFields()
	next.HospitalID = f.HospitalID
	next.HospitalCity = f.HospitalCity
	return next
}

// SelectHospital sets the hospital id and takes the city from the matching
// hospital. An unknown id leaves the city as it was.
func (f *RequestFields) SelectHospital(id string, hospitals []models.Hospital) {
	f.HospitalID = id
	if h, ok := models.FindHospital(hospitals, id); ok {
		f.HospitalCity = h.City
	}
}

// Payload builds the creation body. Check must have passed.
func (f RequestFields) Payload() (models.RequestCreation, error) {
	hospitalID, err := parseInt("hospital_id", f.HospitalID)
	if err != nil {
		return models.RequestCreation{}, err
	}
	qty, err := parseInt("requested_quantity", f.RequestedQuantity)
	if err != nil {
		return models.RequestCreation{}, err
	}

	return models.RequestCreation{
		HospitalID:        hospitalID,
		MedicineName:      f.MedicineName,
		RequestedQuantity: qty,
		HospitalCity:      f.HospitalCity,
		PatientStatus:     f.PatientStatus,
	}, nil
}
