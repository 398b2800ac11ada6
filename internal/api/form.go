package api

import (
	"fmt"
	"net/url"
	"time"

	"github.com/medhubhq/medhub/internal/patient"
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
}

// patientInputFromForm reassembles a flat form body with dotted-path
// keys (contact.phone, address.city) into the nested registration
// payload, mirroring the shape the UI submits.
func patientInputFromForm(form url.Values) (patient.RegistrationInput, error) {
	dob, err := parseDate(form.Get("dateOfBirth"))
	if err != nil {
		return patient.RegistrationInput{}, err
	}

	return patient.RegistrationInput{
		ID:          form.Get("_id"),
		UHN:         form.Get("uhn"),
		FirstName:   form.Get("firstName"),
		LastName:    form.Get("lastName"),
		DateOfBirth: dob,
		Gender:      form.Get("gender"),
		Contact: patient.Contact{
			Phone: form.Get("contact.phone"),
			Email: form.Get("contact.email"),
		},
		Address: patient.Address{
			Street:     form.Get("address.street"),
			City:       form.Get("address.city"),
			State:      form.Get("address.state"),
			Country:    form.Get("address.country"),
			PostalCode: form.Get("address.postalCode"),
		},
		HospitalUserID: form.Get("hospitalId"),
	}, nil
}

// patientRequest is the JSON rendition of the registration payload.
type patientRequest struct {
	ID             string                  `json:"_id,omitempty"`
	UHN            string                  `json:"uhn"`
	FirstName      string                  `json:"firstName"`
	LastName       string                  `json:"lastName"`
	DateOfBirth    string                  `json:"dateOfBirth,omitempty"`
	Gender         string                  `json:"gender,omitempty"`
	Contact        patient.Contact         `json:"contact"`
	Address        patient.Address         `json:"address"`
	HospitalUserID string                  `json:"hospitalId"`
	MedicalRecords []patient.MedicalRecord `json:"medicalRecords,omitempty"`
}

func (r *patientRequest) toInput() (patient.RegistrationInput, error) {
	dob, err := parseDate(r.DateOfBirth)
	if err != nil {
		return patient.RegistrationInput{}, err
	}
	return patient.RegistrationInput{
		ID:             r.ID,
		UHN:            r.UHN,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DateOfBirth:    dob,
		Gender:         r.Gender,
		Contact:        r.Contact,
		Address:        r.Address,
		HospitalUserID: r.HospitalUserID,
		MedicalRecords: r.MedicalRecords,
	}, nil
}
