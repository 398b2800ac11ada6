package account

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of account kinds the registry recognizes.
type Role string

const (
	RoleHospital   Role = "hospital"
	RoleGovernment Role = "government"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHospital, RoleGovernment, RoleAdmin:
		return true
	}
	return false
}

type Address struct {
	Street     string `json:"street,omitempty" bson:"street,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	State      string `json:"state,omitempty" bson:"state,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
}

type Contact struct {
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Email   string `json:"email,omitempty" bson:"email,omitempty"`
	Website string `json:"website,omitempty" bson:"website,omitempty"`
}

// Hospital is the stored shape of a hospital account.
type Hospital struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          string             `json:"userId" bson:"userId"`
	Email           string             `json:"email" bson:"email"`
	Role            Role               `json:"role" bson:"role"`
	Name            string             `json:"name,omitempty" bson:"name,omitempty"`
	HospitalCode    string             `json:"hospitalCode,omitempty" bson:"hospitalCode,omitempty"`
	Address         Address            `json:"address" bson:"address,omitempty"`
	Contact         Contact            `json:"contact" bson:"contact,omitempty"`
	Departments     []string           `json:"departments,omitempty" bson:"departments,omitempty"`
	LicenseNumber   string             `json:"licenseNumber,omitempty" bson:"licenseNumber,omitempty"`
	EstablishedDate time.Time          `json:"establishedDate,omitempty" bson:"establishedDate,omitempty"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Government is the stored shape of a government-body account.
type Government struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID       string             `json:"userId" bson:"userId"`
	Email        string             `json:"email" bson:"email"`
	Role         Role               `json:"role" bson:"role"`
	Organization string             `json:"organization,omitempty" bson:"organization,omitempty"`
	Region       string             `json:"region,omitempty" bson:"region,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Admin is the stored shape of an administrator account.
type Admin struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     string             `json:"userId" bson:"userId"`
	Email      string             `json:"email" bson:"email"`
	Role       Role               `json:"role" bson:"role"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// HospitalData holds the hospital-specific fields of an account.
type HospitalData struct {
	Name            string    `json:"name,omitempty"`
	HospitalCode    string    `json:"hospitalCode,omitempty"`
	Address         Address   `json:"address"`
	Contact         Contact   `json:"contact"`
	Departments     []string  `json:"departments,omitempty"`
	LicenseNumber   string    `json:"licenseNumber,omitempty"`
	EstablishedDate time.Time `json:"establishedDate,omitempty"`
	IsActive        bool      `json:"isActive"`
}

// GovernmentData holds the government-specific fields of an account.
type GovernmentData struct {
	Organization string `json:"organization,omitempty"`
	Region       string `json:"region,omitempty"`
}

// AdminData holds the admin-specific fields of an account.
type AdminData struct {
	Department string `json:"department,omitempty"`
}

// CreateInput is the discriminated payload for account creation. Role
// selects which of the variant payloads applies; the others are ignored.
type CreateInput struct {
	UserID     string          `json:"userId"`
	Email      string          `json:"email"`
	Role       Role            `json:"role"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
	Hospital   *HospitalData   `json:"hospitalData,omitempty"`
	Government *GovernmentData `json:"governmentData,omitempty"`
	Admin      *AdminData      `json:"adminData,omitempty"`
}

// Account is the depopulated snapshot returned by lookups. Exactly one of
// the variant payloads is set, matching Role.
type Account struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Email      string          `json:"email"`
	Role       Role            `json:"role"`
	CreatedAt  time.Time       `json:"createdAt"`
	Hospital   *HospitalData   `json:"hospitalData,omitempty"`
	Government *GovernmentData `json:"governmentData,omitempty"`
	Admin      *AdminData      `json:"adminData,omitempty"`
}

func (h *Hospital) snapshot() *Account {
	return &Account{
		ID:        h.ID.Hex(),
		UserID:    h.UserID,
		Email:     h.Email,
		Role:      RoleHospital,
		CreatedAt: h.CreatedAt,
		Hospital: &HospitalData{
			Name:            h.Name,
			HospitalCode:    h.HospitalCode,
			Address:         h.Address,
			Contact:         h.Contact,
			Departments:     h.Departments,
			LicenseNumber:   h.LicenseNumber,
			EstablishedDate: h.EstablishedDate,
			IsActive:        h.IsActive,
		},
	}
}

func (g *Government) snapshot() *Account {
	return &Account{
		ID:        g.ID.Hex(),
		UserID:    g.UserID,
		Email:     g.Email,
		Role:      RoleGovernment,
		CreatedAt: g.CreatedAt,
		Government: &GovernmentData{
			Organization: g.Organization,
			Region:       g.Region,
		},
	}
}

func (a *Admin) snapshot() *Account {
	return &Account{
		ID:        a.ID.Hex(),
		UserID:    a.UserID,
		Email:     a.Email,
		Role:      RoleAdmin,
		CreatedAt: a.CreatedAt,
		Admin: &AdminData{
			Department: a.Department,
		},
	}
}
