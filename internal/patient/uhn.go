package patient

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/medhubhq/medhub/internal/audit"
)

const (
	uhnPrefix       = "UHN"
	uhnSuffixLength = 6
	uhnAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxUHNAttempts  = 5
)

// ErrUHNExhausted is returned when no free health number was found
// within the attempt bound.
var ErrUHNExhausted = errors.New("unable to generate a unique health number")

// GenerateUHN produces a health number of the form UHN followed by six
// uppercase alphanumeric characters, checked for availability against
// the patient store. The check is best effort; the unique index on the
// collection remains the authoritative guarantee at insert time.
func (s *service) GenerateUHN(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxUHNAttempts; attempt++ {
		candidate, err := newUHNCandidate()
		if err != nil {
			return "", err
		}

		available, err := s.CheckUHN(ctx, candidate)
		if err != nil {
			return "", err
		}
		if available {
			return candidate, nil
		}
	}

	s.audit.LogEvent(ctx, &audit.AuditEvent{
		EventType: audit.EventGenerate,
		Action:    "GENERATE_UHN",
		Resource:  "patient",
		Status:    "exhausted",
	})
	return "", ErrUHNExhausted
}

func newUHNCandidate() (string, error) {
	buf := make([]byte, uhnSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %v", err)
	}
	for i, b := range buf {
		buf[i] = uhnAlphabet[int(b)%len(uhnAlphabet)]
	}
	return uhnPrefix + string(buf), nil
}
