package account

import (
	"context"
	"errors"
	"time"

	"github.com/medhubhq/medhub/internal/audit"
)

var (
	ErrInvalidRole     = errors.New("invalid role specified")
	ErrAccountNotFound = errors.New("account not found")
)

type Service interface {
	Create(ctx context.Context, input CreateInput) error
	Get(ctx context.Context, userID string, role Role) (*Account, error)
}

type service struct {
	hospitals  HospitalRepository
	government GovernmentRepository
	admins     AdminRepository
	audit      audit.Service
}

func NewService(hospitals HospitalRepository, government GovernmentRepository, admins AdminRepository, auditService audit.Service) Service {
	return &service{
		hospitals:  hospitals,
		government: government,
		admins:     admins,
		audit:      auditService,
	}
}

// Create inserts an account into the collection matching input.Role.
// Creation is idempotent: if an account with the same external user ID
// already exists in that collection, the call succeeds without writing.
func (s *service) Create(ctx context.Context, input CreateInput) error {
	if !input.Role.Valid() {
		return ErrInvalidRole
	}

	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var created bool
	switch input.Role {
	case RoleHospital:
		existing, err := s.hospitals.FindByUserID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			break
		}
		h := &Hospital{
			UserID:    input.UserID,
			Email:     input.Email,
			Role:      RoleHospital,
			CreatedAt: createdAt,
			IsActive:  true,
		}
		if input.Hospital != nil {
			h.Name = input.Hospital.Name
			h.HospitalCode = input.Hospital.HospitalCode
			h.Address = input.Hospital.Address
			h.Contact = input.Hospital.Contact
			h.Departments = input.Hospital.Departments
			h.LicenseNumber = input.Hospital.LicenseNumber
			h.EstablishedDate = input.Hospital.EstablishedDate
		}
		if err := s.hospitals.Insert(ctx, h); err != nil {
			return err
		}
		created = true

	case RoleGovernment:
		existing, err := s.government.FindByUserID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			break
		}
		g := &Government{
			UserID:    input.UserID,
			Email:     input.Email,
			Role:      RoleGovernment,
			CreatedAt: createdAt,
		}
		if input.Government != nil {
			g.Organization = input.Government.Organization
			g.Region = input.Government.Region
		}
		if err := s.government.Insert(ctx, g); err != nil {
			return err
		}
		created = true

	case RoleAdmin:
		existing, err := s.admins.FindByUserID(ctx, input.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			break
		}
		a := &Admin{
			UserID:    input.UserID,
			Email:     input.Email,
			Role:      RoleAdmin,
			CreatedAt: createdAt,
		}
		if input.Admin != nil {
			a.Department = input.Admin.Department
		}
		if err := s.admins.Insert(ctx, a); err != nil {
			return err
		}
		created = true
	}

	if created {
		s.audit.LogEvent(ctx, &audit.AuditEvent{
			EventType:  audit.EventCreate,
			UserID:     input.UserID,
			Action:     "CREATE",
			Resource:   "account",
			ResourceID: input.UserID,
			Status:     "success",
		})
	}

	return nil
}

// Get returns a plain-data snapshot of the account stored for
// (userID, role), or ErrAccountNotFound.
func (s *service) Get(ctx context.Context, userID string, role Role) (*Account, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	switch role {
	case RoleHospital:
		h, err := s.hospitals.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if h == nil {
			return nil, ErrAccountNotFound
		}
		return h.snapshot(), nil

	case RoleGovernment:
		g, err := s.government.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, ErrAccountNotFound
		}
		return g.snapshot(), nil

	default:
		a, err := s.admins.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, ErrAccountNotFound
		}
		return a.snapshot(), nil
	}
}
