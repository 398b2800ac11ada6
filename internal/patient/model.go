package patient

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Contact struct {
	Phone string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

type Address struct {
	Street     string `json:"street,omitempty" bson:"street,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
}

// MedicalRecord is one entry in a patient's append-only history.
type MedicalRecord struct {
	RecordID  string    `json:"recordId" bson:"recordId"`
	Date      time.Time `json:"date" bson:"date"`
	Diagnosis string    `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Treatment string    `json:"treatment,omitempty" bson:"treatment,omitempty"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// Patient is the stored patient document. UHN is globally unique across
// all hospitals, enforced by a unique index. HospitalID references the
// owning hospital account's internal id.
type Patient struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UHN            string             `json:"uhn" bson:"uhn"`
	FirstName      string             `json:"firstName" bson:"firstName"`
	LastName       string             `json:"lastName" bson:"lastName"`
	DateOfBirth    time.Time          `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender         string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Contact        Contact            `json:"contact" bson:"contact,omitempty"`
	Address        Address            `json:"address" bson:"address,omitempty"`
	HospitalID     primitive.ObjectID `json:"hospitalId" bson:"hospitalId"`
	MedicalRecords []MedicalRecord    `json:"medicalRecords" bson:"medicalRecords"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// RegistrationInput is the payload for Register. ID empty means create;
// ID set means update of that document. HospitalUserID is the owning
// hospital's external identity, resolved to its internal id before the
// write.
type RegistrationInput struct {
	ID             string
	UHN            string
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	Gender         string
	Contact        Contact
	Address        Address
	HospitalUserID string
	MedicalRecords []MedicalRecord
}

// ValidationError reports the required fields missing from a
// registration payload.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

func (in *RegistrationInput) validate() error {
	var missing []string
	if in.UHN == "" {
		missing = append(missing, "uhn")
	}
	if in.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if in.LastName == "" {
		missing = append(missing, "lastName")
	}
	if in.HospitalUserID == "" {
		missing = append(missing, "hospitalId")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
