package gateway

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"survey-gateway/core/storage"

	"go.uber.org/zap"
)

// defaultPageLimit bounds a listing page when the caller does not pick one.
const defaultPageLimit = 1000

// Lister lists "virtual folders" below a key prefix. The preferred path is a
// single delimiter round trip where the provider computes common prefixes;
// when that fails, folder names are derived from a flat page of keys.
type Lister struct {
	client  storage.Client
	logger  *zap.Logger
	timeout time.Duration
}

// NewLister creates a lister over the given client.
func NewLister(client storage.Client, timeout time.Duration, logger *zap.Logger) *Lister {
	return &Lister{client: client, logger: logger, timeout: timeout}
}

// List returns the folder names depth segments below prefix. Page tokens are
// opaque provider tokens passed through verbatim. List never fails hard: if
// every mode fails the page is empty and Hint carries the diagnostic.
//
// The delimiter mode only expresses one level of nesting, so depth > 1 goes
// straight to flat-key derivation.
func (l *Lister) List(ctx context.Context, bucket, prefix string, depth int, pageToken string, limit int) ListingPage {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if depth < 1 {
		depth = 1
	}

	if depth == 1 {
		listCtx, cancel := context.WithTimeout(ctx, l.timeout)
		res, err := l.client.ListPage(listCtx, bucket, prefix, pageToken, "/", limit)
		cancel()
		if err == nil {
			names := make([]string, 0, len(res.CommonPrefixes))
			for _, cp := range res.CommonPrefixes {
				names = append(names, cp.Prefix)
			}
			sortFolders(names)
			return ListingPage{Prefixes: names, NextPageToken: res.NextContinuationToken}
		}
		l.logger.Warn("delimiter listing failed, deriving folders from flat keys",
			zap.String("bucket", bucket),
			zap.String("prefix", prefix),
			zap.Error(err))
	}

	return l.derive(ctx, bucket, prefix, depth, pageToken, limit)
}

// derive reconstructs folder names from a flat page of object keys: each key
// contributes its first depth segments below prefix, deduplicated.
func (l *Lister) derive(ctx context.Context, bucket, prefix string, depth int, pageToken string, limit int) ListingPage {
	listCtx, cancel := context.WithTimeout(ctx, l.timeout)
	res, err := l.client.ListPage(listCtx, bucket, prefix, pageToken, "", limit)
	cancel()
	if err != nil {
		return ListingPage{
			Prefixes: []string{},
			Hint:     fmt.Sprintf("flat listing under %q in %s failed: %v", prefix, bucket, err),
		}
	}

	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, obj := range res.Contents {
		rel := strings.TrimPrefix(obj.Key, prefix)
		segments := strings.Split(rel, "/")
		if len(segments) <= depth {
			// Key sits above the requested folder level (e.g. a stray
			// file directly under the prefix).
			continue
		}
		name := prefix + strings.Join(segments[:depth], "/") + "/"
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sortFolders(names)
	return ListingPage{Prefixes: names, NextPageToken: res.NextContinuationToken}
}

var datePrefixRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// sortFolders orders date-prefixed folder names newest first (surveyors want
// the most recent day on top) and everything else lexically ascending.
func sortFolders(names []string) {
	allDated := len(names) > 0
	for _, n := range names {
		if !datePrefixRe.MatchString(folderLeaf(n)) {
			allDated = false
			break
		}
	}
	if allDated {
		sort.Sort(sort.Reverse(sort.StringSlice(names)))
		return
	}
	sort.Strings(names)
}

// folderLeaf returns the last segment of a folder prefix like "photos/2024-01-02/".
func folderLeaf(p string) string {
	p = strings.TrimSuffix(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
