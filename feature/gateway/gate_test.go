package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"survey-gateway/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestGate(client *mocks.Client) *Gate {
	return NewGate(client, time.Second, zap.NewNop())
}

func candidates(names ...string) []BucketCandidate {
	out := make([]BucketCandidate, len(names))
	for i, n := range names {
		out[i] = BucketCandidate{Name: n, Source: SourceDefault}
	}
	return out
}

func TestGate_ShortCircuitsOnFirstHit(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "a").Return(false, nil).Once()
	client.On("BucketExists", mock.Anything, "b").Return(true, nil).Once()

	got, err := newTestGate(client).Select(context.Background(), candidates("a", "b", "c"))

	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
	// Exactly k probes for the k-th passing candidate: c is never probed.
	client.AssertNumberOfCalls(t, "BucketExists", 2)
}

func TestGate_ProbeErrorMovesOnButIsRetained(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "a").Return(false, errors.New("connection refused"))
	client.On("BucketExists", mock.Anything, "b").Return(false, nil)

	_, err := newTestGate(client).Select(context.Background(), candidates("a", "b"))

	var noBucket *NoUsableBucketError
	require.ErrorAs(t, err, &noBucket)
	require.Len(t, noBucket.Tried, 2)
	assert.Equal(t, "a", noBucket.Tried[0].Candidate.Name)
	assert.Contains(t, noBucket.Tried[0].Detail, "connection refused")
	assert.Equal(t, "b", noBucket.Tried[1].Candidate.Name)
	assert.Empty(t, noBucket.Tried[1].Detail)
	assert.Contains(t, err.Error(), "a (probe error: connection refused)")
	assert.Contains(t, err.Error(), "b (not found)")
}

func TestGate_EmptyCandidates(t *testing.T) {
	_, err := newTestGate(new(mocks.Client)).Select(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestGate_MemoReordersButStillProbes(t *testing.T) {
	client := new(mocks.Client)
	// First pass: a missing, b exists. b becomes the memoized bucket.
	client.On("BucketExists", mock.Anything, "a").Return(false, nil).Once()
	client.On("BucketExists", mock.Anything, "b").Return(true, nil).Once()

	g := newTestGate(client)
	first, err := g.Select(context.Background(), candidates("a", "b"))
	require.NoError(t, err)
	require.Equal(t, "b", first.Name)

	// Second pass: b is tried first and must be probed again, so a single
	// expectation satisfies the whole walk.
	client.On("BucketExists", mock.Anything, "b").Return(true, nil).Once()

	second, err := g.Select(context.Background(), candidates("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "b", second.Name)
	client.AssertNumberOfCalls(t, "BucketExists", 3)
}

func TestGate_MemoOfVanishedBucketFallsBack(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "b").Return(true, nil).Once()

	g := newTestGate(client)
	_, err := g.Select(context.Background(), candidates("b"))
	require.NoError(t, err)

	// The memoized bucket no longer exists; the walk continues in the
	// original priority order.
	client.On("BucketExists", mock.Anything, "b").Return(false, nil).Once()
	client.On("BucketExists", mock.Anything, "a").Return(true, nil).Once()

	got, err := g.Select(context.Background(), candidates("a", "b"))
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
}

func TestGate_NotFoundErrorCountsAsAbsence(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "a").Return(false, notFoundErr())
	client.On("BucketExists", mock.Anything, "b").Return(true, nil)

	got, err := newTestGate(client).Select(context.Background(), candidates("a", "b"))

	require.NoError(t, err)
	assert.Equal(t, "b", got.Name)
}
