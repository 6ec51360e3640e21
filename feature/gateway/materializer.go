package gateway

import (
	"context"
	"sync"
	"time"

	"survey-gateway/core/storage"
)

// PresignTTL is the longest expiry the signing protocol accepts (7 days).
// Survey photos are not access-sensitive beyond the obscurity of their path,
// and listings re-materialize URLs on every request, so the protocol maximum
// stands in for "non-expiring".
const PresignTTL = 7 * 24 * time.Hour

// Materializer converts batches of stored object paths into signed download
// URLs with a fixed-size worker pool.
type Materializer struct {
	client  storage.Client
	timeout time.Duration
}

// NewMaterializer creates a materializer over the given client.
func NewMaterializer(client storage.Client, timeout time.Duration) *Materializer {
	return &Materializer{client: client, timeout: timeout}
}

// Materialize presigns every path using at most concurrency simultaneous
// requests. Results keep input order; a failed item only fills its own
// Error slot and never aborts or delays its siblings.
func (m *Materializer) Materialize(ctx context.Context, bucket string, paths []string, concurrency int) []MaterializedURL {
	results := make([]MaterializedURL, len(paths))
	if len(paths) == 0 {
		return results
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(paths) {
		concurrency = len(paths)
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i] = m.one(ctx, bucket, paths[i])
			}
		}()
	}
	for i := range paths {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return results
}

func (m *Materializer) one(ctx context.Context, bucket, path string) MaterializedURL {
	reqCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	u, err := m.client.PresignedGet(reqCtx, bucket, path, PresignTTL)
	if err != nil {
		return MaterializedURL{Path: path, Error: err.Error()}
	}
	return MaterializedURL{Path: path, URL: u.String()}
}
