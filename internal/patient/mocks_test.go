package patient

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medhubhq/medhub/internal/account"
	"github.com/medhubhq/medhub/internal/audit"
)

// Compile-time checks
var (
	_ Repository                 = (*fakeRepository)(nil)
	_ account.HospitalRepository = (*stubHospitals)(nil)
	_ audit.Service              = (*noopAudit)(nil)
)

// fakeRepository is an in-memory Repository with the same timestamp and
// duplicate-key behavior as the Mongo implementation.
type fakeRepository struct {
	patients map[primitive.ObjectID]Patient

	// FindByUHNFunc overrides availability lookups when set.
	FindByUHNFunc  func(ctx context.Context, uhn string) (*Patient, error)
	FindByUHNCalls int32
	clock          time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		patients: make(map[primitive.ObjectID]Patient),
		clock:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeRepository) now() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepository) Insert(ctx context.Context, p *Patient) error {
	for _, stored := range f.patients {
		if stored.UHN == p.UHN {
			return ErrDuplicateUHN
		}
	}
	p.ID = primitive.NewObjectID()
	now := f.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	f.patients[p.ID] = *p
	return nil
}

func (f *fakeRepository) Replace(ctx context.Context, p *Patient) error {
	for id, stored := range f.patients {
		if stored.UHN == p.UHN && id != p.ID {
			return ErrDuplicateUHN
		}
	}
	p.UpdatedAt = f.now()
	f.patients[p.ID] = *p
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Patient, error) {
	if stored, ok := f.patients[id]; ok {
		p := stored
		return &p, nil
	}
	return nil, nil
}

func (f *fakeRepository) FindByUHN(ctx context.Context, uhn string) (*Patient, error) {
	atomic.AddInt32(&f.FindByUHNCalls, 1)
	if f.FindByUHNFunc != nil {
		return f.FindByUHNFunc(ctx, uhn)
	}
	for _, stored := range f.patients {
		if stored.UHN == uhn {
			p := stored
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) FindByUHNExcept(ctx context.Context, uhn string, id primitive.ObjectID) (*Patient, error) {
	for storedID, stored := range f.patients {
		if stored.UHN == uhn && storedID != id {
			p := stored
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepository) FindByHospital(ctx context.Context, hospitalID primitive.ObjectID) ([]*Patient, error) {
	result := make([]*Patient, 0)
	for _, stored := range f.patients {
		if stored.HospitalID == hospitalID {
			p := stored
			result = append(result, &p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// stubHospitals serves a single hospital account by its external user ID.
type stubHospitals struct {
	hospital *account.Hospital
}

func (s *stubHospitals) Insert(ctx context.Context, h *account.Hospital) error { return nil }

func (s *stubHospitals) FindByUserID(ctx context.Context, userID string) (*account.Hospital, error) {
	if s.hospital != nil && s.hospital.UserID == userID {
		return s.hospital, nil
	}
	return nil, nil
}

func (s *stubHospitals) FindByID(ctx context.Context, id primitive.ObjectID) (*account.Hospital, error) {
	if s.hospital != nil && s.hospital.ID == id {
		return s.hospital, nil
	}
	return nil, nil
}

func (s *stubHospitals) Save(ctx context.Context, h *account.Hospital) error { return nil }

type noopAudit struct{}

func (noopAudit) LogEvent(ctx context.Context, event *audit.AuditEvent) error { return nil }

func (noopAudit) QueryEvents(ctx context.Context, filters map[string]interface{}, from, size int) ([]audit.AuditEvent, error) {
	return nil, nil
}
