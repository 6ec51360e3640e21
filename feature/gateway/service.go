package gateway

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"survey-gateway/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service wires the resolver, gate, lister and materializer behind the
// storage endpoints. All state is request-scoped except the gate's
// last-known-good memo.
type Service struct {
	client  storage.Client
	cfg     storage.Config
	logger  *zap.Logger
	gate    *Gate
	lister  *Lister
	mat     *Materializer
	timeout time.Duration
}

// NewService creates the gateway service.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	timeout := time.Duration(cfg.Timeout()) * time.Second
	return &Service{
		client:  client,
		cfg:     cfg,
		logger:  logger,
		gate:    NewGate(client, timeout, logger),
		lister:  NewLister(client, timeout, logger),
		mat:     NewMaterializer(client, timeout),
		timeout: timeout,
	}
}

// selectBucket resolves candidates and returns the first usable one.
func (s *Service) selectBucket(ctx context.Context) (BucketCandidate, error) {
	return s.gate.Select(ctx, Resolve(s.cfg))
}

// rootPrefix returns the photo root as a "photos/"-shaped key prefix.
func (s *Service) rootPrefix() string {
	root := strings.Trim(s.cfg.PhotoRoot, "/")
	if root == "" {
		return ""
	}
	return root + "/"
}

// Health runs the resolution pipeline without side effects and reports
// which bucket the gateway would use right now.
func (s *Service) Health(ctx context.Context) HealthReport {
	candidates := Resolve(s.cfg)
	report := HealthReport{Candidates: candidates}
	if len(candidates) == 0 {
		report.Diagnostics = ErrNoCandidates.Error()
		return report
	}

	bucket, err := s.gate.Select(ctx, candidates)
	if err != nil {
		report.Diagnostics = err.Error()
		return report
	}
	report.OK = true
	report.ResolvedBucket = bucket.Name
	return report
}

// ListDays lists the survey-day folders directly under the photo root,
// most recent day first.
func (s *Service) ListDays(ctx context.Context, pageToken string, limit int) (ListingPage, error) {
	return s.listFolders(ctx, s.rootPrefix(), 1, pageToken, limit)
}

// ListSurveyors lists the surveyor folders for one day, or across every day
// when day is empty (two levels below the root, derived from flat keys).
func (s *Service) ListSurveyors(ctx context.Context, day, pageToken string, limit int) (ListingPage, error) {
	if day == "" {
		return s.listFolders(ctx, s.rootPrefix(), 2, pageToken, limit)
	}
	return s.listFolders(ctx, s.rootPrefix()+day+"/", 1, pageToken, limit)
}

func (s *Service) listFolders(ctx context.Context, prefix string, depth int, pageToken string, limit int) (ListingPage, error) {
	bucket, err := s.selectBucket(ctx)
	if err != nil {
		return s.downgradeListing(err)
	}

	page := s.lister.List(ctx, bucket.Name, prefix, depth, pageToken, limit)
	if page.Hint != "" {
		s.logger.Warn("listing degraded to empty result", zap.String("hint", page.Hint))
	}
	return page, nil
}

// ListFiles lists the objects under one day/surveyor folder and materializes
// a signed download URL for each.
func (s *Service) ListFiles(ctx context.Context, day, surveyor, pageToken string, limit int) ([]FileEntry, string, error) {
	bucket, err := s.selectBucket(ctx)
	if err != nil {
		page, err := s.downgradeListing(err)
		return []FileEntry{}, page.NextPageToken, err
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}

	prefix := s.rootPrefix() + day + "/" + surveyor + "/"
	listCtx, cancel := context.WithTimeout(ctx, s.timeout)
	res, err := s.client.ListPage(listCtx, bucket.Name, prefix, pageToken, "", limit)
	cancel()
	if err != nil {
		s.logger.Warn("file listing degraded to empty result",
			zap.String("bucket", bucket.Name),
			zap.String("prefix", prefix),
			zap.Error(err))
		return []FileEntry{}, "", nil
	}

	paths := make([]string, 0, len(res.Contents))
	for _, obj := range res.Contents {
		if strings.HasSuffix(obj.Key, "/") {
			continue // folder marker
		}
		paths = append(paths, obj.Key)
	}

	urls := s.mat.Materialize(ctx, bucket.Name, paths, s.cfg.PresignWorkers)
	entries := make([]FileEntry, len(urls))
	for i, u := range urls {
		entries[i] = FileEntry{
			Name:  path.Base(u.Path),
			Path:  u.Path,
			URL:   u.URL,
			Error: u.Error,
		}
	}
	return entries, res.NextContinuationToken, nil
}

// ResolveFile returns a signed download URL for one stored object. The
// object must verifiably exist first: handing out a URL that will 404 on
// first use only moves the failure somewhere harder to diagnose.
func (s *Service) ResolveFile(ctx context.Context, objectPath string) (FileEntry, error) {
	if err := validateObjectPath(objectPath); err != nil {
		return FileEntry{}, err
	}
	bucket, err := s.selectBucket(ctx)
	if err != nil {
		return FileEntry{}, err
	}

	statCtx, cancel := context.WithTimeout(ctx, s.timeout)
	_, err = s.client.StatObject(statCtx, bucket.Name, objectPath, minio.StatObjectOptions{})
	cancel()
	if err != nil {
		if isNotFound(err) {
			return FileEntry{}, fmt.Errorf("%w: %s/%s", ErrObjectNotFound, bucket.Name, objectPath)
		}
		return FileEntry{}, fmt.Errorf("stat of %s/%s failed: %w", bucket.Name, objectPath, err)
	}

	urlCtx, cancel := context.WithTimeout(ctx, s.timeout)
	u, err := s.client.PresignedGet(urlCtx, bucket.Name, objectPath, PresignTTL)
	cancel()
	if err != nil {
		return FileEntry{}, fmt.Errorf("signing URL for %s/%s failed: %w", bucket.Name, objectPath, err)
	}

	return FileEntry{
		Name: path.Base(objectPath),
		Path: objectPath,
		URL:  u.String(),
	}, nil
}

// downgradeListing converts bucket-resolution failures into the empty-page
// behavior the UI expects: an empty folder is a normal state, an unreachable
// store is logged. Configuration errors stay fatal.
func (s *Service) downgradeListing(err error) (ListingPage, error) {
	if errors.Is(err, ErrNoCandidates) {
		return ListingPage{}, err
	}
	var noBucket *NoUsableBucketError
	if errors.As(err, &noBucket) {
		s.logger.Warn("no usable bucket, listing degraded to empty result", zap.Error(noBucket))
		return ListingPage{Prefixes: []string{}, Hint: noBucket.Error()}, nil
	}
	return ListingPage{}, err
}
