package hospital

import (
	"context"
	"errors"
	"time"

	"github.com/medhubhq/medhub/internal/account"
	"github.com/medhubhq/medhub/internal/audit"
)

var ErrProfileNotFound = errors.New("hospital profile not found")

// Profile is the mutable subset of a hospital account. Identity fields
// (userId, email, role, createdAt) are reported but never written by
// profile updates.
type Profile struct {
	UserID          string          `json:"userId"`
	Email           string          `json:"email"`
	Name            string          `json:"name,omitempty"`
	HospitalCode    string          `json:"hospitalCode,omitempty"`
	Contact         account.Contact `json:"contact"`
	Address         account.Address `json:"address"`
	Departments     []string        `json:"departments,omitempty"`
	LicenseNumber   string          `json:"licenseNumber,omitempty"`
	EstablishedDate time.Time       `json:"establishedDate,omitempty"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ContactPatch and AddressPatch carry optional nested fields: nil means
// "keep the stored value". Nested objects merge field by field, never
// wholesale — sending only contact.phone must not erase contact.email.
type ContactPatch struct {
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Website *string `json:"website,omitempty"`
}

type AddressPatch struct {
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	Country    *string `json:"country,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
}

// ProfilePatch is a partial profile update. Absent (nil) fields coalesce
// to the stored values.
type ProfilePatch struct {
	Name            *string       `json:"name,omitempty"`
	HospitalCode    *string       `json:"hospitalCode,omitempty"`
	Contact         *ContactPatch `json:"contact,omitempty"`
	Address         *AddressPatch `json:"address,omitempty"`
	Departments     *[]string     `json:"departments,omitempty"`
	LicenseNumber   *string       `json:"licenseNumber,omitempty"`
	EstablishedDate *time.Time    `json:"establishedDate,omitempty"`
	IsActive        *bool         `json:"isActive,omitempty"`
}

type Service interface {
	Get(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, userID string, patch ProfilePatch) (*Profile, error)
}

type service struct {
	hospitals account.HospitalRepository
	audit     audit.Service
}

func NewService(hospitals account.HospitalRepository, auditService audit.Service) Service {
	return &service{hospitals: hospitals, audit: auditService}
}

func (s *service) Get(ctx context.Context, userID string) (*Profile, error) {
	h, err := s.hospitals.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, ErrProfileNotFound
	}
	return profileOf(h), nil
}

// Update merges the patch into the stored profile field by field and
// persists the result as a single document write.
func (s *service) Update(ctx context.Context, userID string, patch ProfilePatch) (*Profile, error) {
	h, err := s.hospitals.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, ErrProfileNotFound
	}

	applyPatch(h, patch)

	if err := s.hospitals.Save(ctx, h); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, &audit.AuditEvent{
		EventType:  audit.EventModify,
		UserID:     userID,
		Action:     "UPDATE_PROFILE",
		Resource:   "hospital",
		ResourceID: h.ID.Hex(),
		Status:     "success",
	})

	return profileOf(h), nil
}

func applyPatch(h *account.Hospital, patch ProfilePatch) {
	if patch.Name != nil {
		h.Name = *patch.Name
	}
	if patch.HospitalCode != nil {
		h.HospitalCode = *patch.HospitalCode
	}
	if patch.Contact != nil {
		if patch.Contact.Phone != nil {
			h.Contact.Phone = *patch.Contact.Phone
		}
		if patch.Contact.Email != nil {
			h.Contact.Email = *patch.Contact.Email
		}
		if patch.Contact.Website != nil {
			h.Contact.Website = *patch.Contact.Website
		}
	}
	if patch.Address != nil {
		if patch.Address.Street != nil {
			h.Address.Street = *patch.Address.Street
		}
		if patch.Address.City != nil {
			h.Address.City = *patch.Address.City
		}
		if patch.Address.State != nil {
			h.Address.State = *patch.Address.State
		}
		if patch.Address.Country != nil {
			h.Address.Country = *patch.Address.Country
		}
		if patch.Address.PostalCode != nil {
			h.Address.PostalCode = *patch.Address.PostalCode
		}
	}
	if patch.Departments != nil {
		h.Departments = *patch.Departments
	}
	if patch.LicenseNumber != nil {
		h.LicenseNumber = *patch.LicenseNumber
	}
	if patch.EstablishedDate != nil {
		h.EstablishedDate = *patch.EstablishedDate
	}
	if patch.IsActive != nil {
		h.IsActive = *patch.IsActive
	}
}

func profileOf(h *account.Hospital) *Profile {
	return &Profile{
		UserID:          h.UserID,
		Email:           h.Email,
		Name:            h.Name,
		HospitalCode:    h.HospitalCode,
		Contact:         h.Contact,
		Address:         h.Address,
		Departments:     h.Departments,
		LicenseNumber:   h.LicenseNumber,
		EstablishedDate: h.EstablishedDate,
		IsActive:        h.IsActive,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}
