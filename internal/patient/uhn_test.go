package patient

import (
	"context"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var uhnPattern = regexp.MustCompile(`^UHN[A-Z0-9]{6}$`)

func TestGenerateUHNFormat(t *testing.T) {
	svc, _, _ := newTestService(t)

	for i := 0; i < 20; i++ {
		uhn, err := svc.GenerateUHN(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, uhnPattern, uhn)
	}
}

func TestGenerateUHNExhaustsAfterBoundedAttempts(t *testing.T) {
	svc, repo, _ := newTestService(t)

	// Every candidate reads as taken.
	occupied := &Patient{UHN: "UHNTAKEN1"}
	repo.FindByUHNFunc = func(ctx context.Context, uhn string) (*Patient, error) {
		return occupied, nil
	}

	_, err := svc.GenerateUHN(context.Background())
	assert.ErrorIs(t, err, ErrUHNExhausted)
	assert.Equal(t, int32(maxUHNAttempts), atomic.LoadInt32(&repo.FindByUHNCalls))
}

func TestNewUHNCandidateAlphabet(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		candidate, err := newUHNCandidate()
		require.NoError(t, err)
		assert.Regexp(t, uhnPattern, candidate)
		seen[candidate] = struct{}{}
	}
	// 36^6 keyspace: 100 draws colliding would mean a broken generator.
	assert.Greater(t, len(seen), 90)
}
