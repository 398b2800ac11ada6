package hospital

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medhubhq/medhub/internal/account"
	"github.com/medhubhq/medhub/internal/audit"
)

var _ account.HospitalRepository = (*fakeHospitals)(nil)

type fakeHospitals struct {
	byUserID map[string]*account.Hospital
	saves    int
}

func newFakeHospitals() *fakeHospitals {
	return &fakeHospitals{byUserID: make(map[string]*account.Hospital)}
}

func (f *fakeHospitals) Insert(ctx context.Context, h *account.Hospital) error {
	h.ID = primitive.NewObjectID()
	f.byUserID[h.UserID] = h
	return nil
}

func (f *fakeHospitals) FindByUserID(ctx context.Context, userID string) (*account.Hospital, error) {
	h, ok := f.byUserID[userID]
	if !ok {
		return nil, nil
	}
	copied := *h
	return &copied, nil
}

func (f *fakeHospitals) FindByID(ctx context.Context, id primitive.ObjectID) (*account.Hospital, error) {
	for _, h := range f.byUserID {
		if h.ID == id {
			copied := *h
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeHospitals) Save(ctx context.Context, h *account.Hospital) error {
	f.saves++
	h.UpdatedAt = time.Now().UTC()
	f.byUserID[h.UserID] = h
	return nil
}

type noopAudit struct{}

func (noopAudit) LogEvent(ctx context.Context, event *audit.AuditEvent) error { return nil }

func (noopAudit) QueryEvents(ctx context.Context, filters map[string]interface{}, from, size int) ([]audit.AuditEvent, error) {
	return nil, nil
}

func strptr(s string) *string { return &s }

func newTestService(t *testing.T) (Service, *fakeHospitals) {
	t.Helper()

	repo := newFakeHospitals()
	require.NoError(t, repo.Insert(context.Background(), &account.Hospital{
		UserID:       "user_1",
		Email:        "records@stmarys.example",
		Role:         account.RoleHospital,
		Name:         "St Mary's General",
		HospitalCode: "STM001",
		Contact: account.Contact{
			Phone: "+15550100",
			Email: "frontdesk@stmarys.example",
		},
		Address: account.Address{
			Street: "1 Hospital Way",
			City:   "Springfield",
		},
		Departments: []string{"cardiology", "oncology"},
		IsActive:    true,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	return NewService(repo, noopAudit{}), repo
}

func TestGetProfile(t *testing.T) {
	svc, _ := newTestService(t)

	profile, err := svc.Get(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Equal(t, "St Mary's General", profile.Name)
	assert.Equal(t, "frontdesk@stmarys.example", profile.Contact.Email)
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "user_unknown")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestUpdateNotFoundDoesNotWrite(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Update(context.Background(), "user_unknown", ProfilePatch{Name: strptr("x")})
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Zero(t, repo.saves)
}

func TestUpdateMergesNestedContactFieldByField(t *testing.T) {
	svc, _ := newTestService(t)

	// Patch carries only the phone; email and website must survive.
	profile, err := svc.Update(context.Background(), "user_1", ProfilePatch{
		Contact: &ContactPatch{Phone: strptr("+15550177")},
	})
	require.NoError(t, err)
	assert.Equal(t, "+15550177", profile.Contact.Phone)
	assert.Equal(t, "frontdesk@stmarys.example", profile.Contact.Email)
}

func TestUpdateMergesNestedAddressFieldByField(t *testing.T) {
	svc, _ := newTestService(t)

	profile, err := svc.Update(context.Background(), "user_1", ProfilePatch{
		Address: &AddressPatch{City: strptr("Shelbyville")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Shelbyville", profile.Address.City)
	assert.Equal(t, "1 Hospital Way", profile.Address.Street)
}

func TestUpdateAbsentFieldsKeepStoredValues(t *testing.T) {
	svc, _ := newTestService(t)

	profile, err := svc.Update(context.Background(), "user_1", ProfilePatch{
		Name: strptr("St Mary's Regional"),
	})
	require.NoError(t, err)
	assert.Equal(t, "St Mary's Regional", profile.Name)
	assert.Equal(t, "STM001", profile.HospitalCode)
	assert.Equal(t, []string{"cardiology", "oncology"}, profile.Departments)
	assert.True(t, profile.IsActive)
}

func TestUpdateDepartmentsReplaceWholesale(t *testing.T) {
	svc, _ := newTestService(t)

	depts := []string{"radiology"}
	profile, err := svc.Update(context.Background(), "user_1", ProfilePatch{
		Departments: &depts,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"radiology"}, profile.Departments)
}

func TestUpdateNeverTouchesIdentityFields(t *testing.T) {
	svc, repo := newTestService(t)

	before := repo.byUserID["user_1"]
	beforeID, beforeCreated := before.ID, before.CreatedAt

	profile, err := svc.Update(context.Background(), "user_1", ProfilePatch{
		Name: strptr("Renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "user_1", profile.UserID)
	assert.Equal(t, "records@stmarys.example", profile.Email)
	assert.Equal(t, beforeCreated, profile.CreatedAt)

	after := repo.byUserID["user_1"]
	assert.Equal(t, beforeID, after.ID)
	assert.Equal(t, account.RoleHospital, after.Role)
}

func TestUpdateIsActiveToggle(t *testing.T) {
	svc, _ := newTestService(t)

	inactive := false
	profile, err := svc.Update(context.Background(), "user_1", ProfilePatch{
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, profile.IsActive)
}
