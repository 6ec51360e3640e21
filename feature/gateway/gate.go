package gateway

import (
	"context"
	"sync"
	"time"

	"survey-gateway/core/storage"

	"go.uber.org/zap"
)

// Gate walks candidate buckets in priority order and returns the first one
// that verifiably exists. Probing is strictly sequential: the order IS the
// fallback policy, and parallel probes would turn configuration bugs into
// nondeterministic winners.
type Gate struct {
	client       storage.Client
	logger       *zap.Logger
	probeTimeout time.Duration

	mu       sync.RWMutex
	lastGood string
}

// NewGate creates a gate probing through the given client.
func NewGate(client storage.Client, probeTimeout time.Duration, logger *zap.Logger) *Gate {
	return &Gate{client: client, logger: logger, probeTimeout: probeTimeout}
}

// Select probes candidates in order and returns the first existing bucket.
// Probe errors count the same as absence for moving on, but their messages
// are retained; exhaustion returns a *NoUsableBucketError with the full
// trail. An empty candidate list returns ErrNoCandidates.
func (g *Gate) Select(ctx context.Context, candidates []BucketCandidate) (BucketCandidate, error) {
	if len(candidates) == 0 {
		return BucketCandidate{}, ErrNoCandidates
	}

	tried := make([]ProbeAttempt, 0, len(candidates))
	for _, cand := range g.reorder(candidates) {
		probeCtx, cancel := context.WithTimeout(ctx, g.probeTimeout)
		exists, err := g.client.BucketExists(probeCtx, cand.Name)
		cancel()

		switch {
		case err != nil && !isNotFound(err):
			g.logger.Warn("bucket probe failed",
				zap.String("bucket", cand.Name),
				zap.String("source", string(cand.Source)),
				zap.Error(err))
			tried = append(tried, ProbeAttempt{Candidate: cand, Detail: err.Error()})
		case err != nil || !exists:
			tried = append(tried, ProbeAttempt{Candidate: cand})
		default:
			g.remember(cand.Name)
			return cand, nil
		}
	}

	return BucketCandidate{}, &NoUsableBucketError{Tried: tried}
}

// reorder moves the last known good bucket to the front of the try sequence.
// It only changes the order: the memoized candidate is still probed, so a
// stale memo costs one wasted probe, never a wrong answer.
func (g *Gate) reorder(candidates []BucketCandidate) []BucketCandidate {
	g.mu.RLock()
	last := g.lastGood
	g.mu.RUnlock()
	if last == "" {
		return candidates
	}

	out := make([]BucketCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Name == last {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	for _, c := range candidates {
		if c.Name != last {
			out = append(out, c)
		}
	}
	return out
}

func (g *Gate) remember(name string) {
	g.mu.Lock()
	g.lastGood = name
	g.mu.Unlock()
}
