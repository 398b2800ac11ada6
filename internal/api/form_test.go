package api

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		fails bool
	}{
		{name: "empty is zero", value: "", want: time.Time{}},
		{name: "date only", value: "1990-05-01", want: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", value: "1990-05-01T10:30:00Z", want: time.Date(1990, 5, 1, 10, 30, 0, 0, time.UTC)},
		{name: "garbage", value: "05/01/1990", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.value)
			if tt.fails {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestPatientInputFromForm(t *testing.T) {
	form := url.Values{}
	form.Set("_id", "65f1a0000000000000000001")
	form.Set("uhn", "UHN1A2B3C")
	form.Set("firstName", "Jane")
	form.Set("lastName", "Doe")
	form.Set("dateOfBirth", "1990-05-01")
	form.Set("gender", "female")
	form.Set("contact.phone", "+15550100")
	form.Set("contact.email", "jane.doe@example.com")
	form.Set("address.street", "12 Elm St")
	form.Set("address.city", "Springfield")
	form.Set("address.state", "IL")
	form.Set("address.country", "US")
	form.Set("address.postalCode", "62704")
	form.Set("hospitalId", "user_2hospital")

	in, err := patientInputFromForm(form)
	require.NoError(t, err)

	assert.Equal(t, "65f1a0000000000000000001", in.ID)
	assert.Equal(t, "UHN1A2B3C", in.UHN)
	assert.Equal(t, "Jane", in.FirstName)
	assert.Equal(t, "Doe", in.LastName)
	assert.Equal(t, time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC), in.DateOfBirth)
	assert.Equal(t, "+15550100", in.Contact.Phone)
	assert.Equal(t, "jane.doe@example.com", in.Contact.Email)
	assert.Equal(t, "Springfield", in.Address.City)
	assert.Equal(t, "62704", in.Address.PostalCode)
	assert.Equal(t, "user_2hospital", in.HospitalUserID)
}

func TestPatientInputFromFormBadDate(t *testing.T) {
	form := url.Values{}
	form.Set("uhn", "UHN1A2B3C")
	form.Set("dateOfBirth", "not-a-date")

	_, err := patientInputFromForm(form)
	assert.Error(t, err)
}

func TestPatientRequestToInput(t *testing.T) {
	req := patientRequest{
		UHN:            "UHN1A2B3C",
		FirstName:      "Jane",
		LastName:       "Doe",
		DateOfBirth:    "1990-05-01T00:00:00Z",
		HospitalUserID: "user_2hospital",
	}

	in, err := req.toInput()
	require.NoError(t, err)
	assert.Equal(t, "UHN1A2B3C", in.UHN)
	assert.Equal(t, 1990, in.DateOfBirth.Year())
	assert.Empty(t, in.ID)
}
