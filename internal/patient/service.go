package patient

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medhubhq/medhub/internal/account"
	"github.com/medhubhq/medhub/internal/audit"
	"github.com/medhubhq/medhub/internal/encryption"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrHospitalNotFound   = errors.New("hospital not found")
	ErrInvalidHospitalRef = errors.New("invalid hospital ID")
	ErrDuplicateUHN       = errors.New("UHN is already in use by another patient")
)

type Service interface {
	Register(ctx context.Context, input RegistrationInput) (*Patient, error)
	List(ctx context.Context, hospitalUserID string) ([]*Patient, error)
	CheckUHN(ctx context.Context, uhn string) (bool, error)
	GenerateUHN(ctx context.Context) (string, error)
}

type service struct {
	repo      Repository
	hospitals account.HospitalRepository
	encrypt   encryption.Service
	audit     audit.Service
}

func NewService(repo Repository, hospitals account.HospitalRepository, encrypt encryption.Service, auditService audit.Service) Service {
	return &service{
		repo:      repo,
		hospitals: hospitals,
		encrypt:   encrypt,
		audit:     auditService,
	}
}

// Register creates a patient record, or updates one when input.ID is
// set. Either way it is a single document write: validation and the UHN
// availability check happen before anything is persisted, and the
// store's unique index settles any create race that slips past the
// check.
func (s *service) Register(ctx context.Context, input RegistrationInput) (*Patient, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	hospital, err := s.hospitals.FindByUserID(ctx, input.HospitalUserID)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, ErrInvalidHospitalRef
	}

	if input.ID == "" {
		return s.create(ctx, input, hospital.ID)
	}
	return s.update(ctx, input, hospital.ID)
}

func (s *service) create(ctx context.Context, input RegistrationInput, hospitalID primitive.ObjectID) (*Patient, error) {
	existing, err := s.repo.FindByUHN(ctx, input.UHN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateUHN
	}

	p := &Patient{
		UHN:         input.UHN,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Gender:      input.Gender,
		Contact:     input.Contact,
		Address:     input.Address,
		HospitalID:  hospitalID,
		// New records always start with an empty history.
		MedicalRecords: []MedicalRecord{},
	}

	if err := s.encryptContact(p); err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, &audit.AuditEvent{
		EventType:  audit.EventCreate,
		UserID:     input.HospitalUserID,
		Action:     "REGISTER",
		Resource:   "patient",
		ResourceID: p.ID.Hex(),
		Status:     "success",
	})

	p.Contact = input.Contact
	return p, nil
}

func (s *service) update(ctx context.Context, input RegistrationInput, hospitalID primitive.ObjectID) (*Patient, error) {
	id, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		return nil, ErrPatientNotFound
	}

	// A patient keeping its own UHN is not a collision.
	holder, err := s.repo.FindByUHNExcept(ctx, input.UHN, id)
	if err != nil {
		return nil, err
	}
	if holder != nil {
		return nil, ErrDuplicateUHN
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrPatientNotFound
	}

	p := &Patient{
		ID:             id,
		UHN:            input.UHN,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		DateOfBirth:    input.DateOfBirth,
		Gender:         input.Gender,
		Contact:        input.Contact,
		Address:        input.Address,
		HospitalID:     hospitalID,
		MedicalRecords: input.MedicalRecords,
		CreatedAt:      existing.CreatedAt,
	}
	if p.MedicalRecords == nil {
		p.MedicalRecords = existing.MedicalRecords
	}

	if err := s.encryptContact(p); err != nil {
		return nil, err
	}
	if err := s.repo.Replace(ctx, p); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, &audit.AuditEvent{
		EventType:  audit.EventModify,
		UserID:     input.HospitalUserID,
		Action:     "UPDATE",
		Resource:   "patient",
		ResourceID: p.ID.Hex(),
		Status:     "success",
	})

	p.Contact = input.Contact
	return p, nil
}

// List returns all patients owned by the hospital identified by its
// external user ID, oldest first. A hospital with no patients yields an
// empty slice, not an error.
func (s *service) List(ctx context.Context, hospitalUserID string) ([]*Patient, error) {
	hospital, err := s.hospitals.FindByUserID(ctx, hospitalUserID)
	if err != nil {
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	patients, err := s.repo.FindByHospital(ctx, hospital.ID)
	if err != nil {
		return nil, err
	}

	for _, p := range patients {
		if err := s.decryptContact(p); err != nil {
			return nil, err
		}
	}

	s.audit.LogEvent(ctx, &audit.AuditEvent{
		EventType: audit.EventAccess,
		UserID:    hospitalUserID,
		Action:    "LIST",
		Resource:  "patient",
		Status:    "success",
	})

	return patients, nil
}

// CheckUHN reports whether the health number is free. Read-only; the
// result is advisory since a concurrent registration can claim the
// number between the check and a later insert.
func (s *service) CheckUHN(ctx context.Context, uhn string) (bool, error) {
	existing, err := s.repo.FindByUHN(ctx, uhn)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (s *service) encryptContact(p *Patient) error {
	if p.Contact.Phone != "" {
		enc, err := s.encrypt.Encrypt([]byte(p.Contact.Phone))
		if err != nil {
			return err
		}
		p.Contact.Phone = enc
	}
	if p.Contact.Email != "" {
		enc, err := s.encrypt.Encrypt([]byte(p.Contact.Email))
		if err != nil {
			return err
		}
		p.Contact.Email = enc
	}
	return nil
}

func (s *service) decryptContact(p *Patient) error {
	if p.Contact.Phone != "" {
		dec, err := s.encrypt.Decrypt(p.Contact.Phone)
		if err != nil {
			return err
		}
		p.Contact.Phone = string(dec)
	}
	if p.Contact.Email != "" {
		dec, err := s.encrypt.Decrypt(p.Contact.Email)
		if err != nil {
			return err
		}
		p.Contact.Email = string(dec)
	}
	return nil
}
