package gateway

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Upload stores payload at the logical path, trying candidate buckets in
// priority order. Failures are attributed to wrong-bucket selection, not
// transient load, so the pipeline moves to the next candidate immediately
// with no backoff. On success a signed URL for the fresh object is returned
// together with the attempt trail; total exhaustion returns a
// *UploadExhaustedError carrying that trail.
func (s *Service) Upload(ctx context.Context, objectPath, contentType string, payload []byte) (UploadResult, error) {
	if err := validateObjectPath(objectPath); err != nil {
		return UploadResult{}, err
	}

	candidates := s.gate.reorder(Resolve(s.cfg))
	if len(candidates) == 0 {
		return UploadResult{}, ErrNoCandidates
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// Best-effort pre-validation of the leading candidate. A failed probe is
	// only logged: existence checks are eventually consistent and must not
	// veto the attempt itself.
	probeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	if exists, err := s.client.BucketExists(probeCtx, candidates[0].Name); err != nil || !exists {
		s.logger.Warn("leading upload candidate failed pre-validation",
			zap.String("bucket", candidates[0].Name),
			zap.Bool("exists", exists),
			zap.Error(err))
	}
	cancel()

	attempts := make([]UploadAttempt, 0, len(candidates))
	for _, cand := range candidates {
		putCtx, cancel := context.WithTimeout(ctx, s.timeout)
		_, err := s.client.PutObject(putCtx, cand.Name, objectPath,
			bytes.NewReader(payload), int64(len(payload)),
			minio.PutObjectOptions{ContentType: contentType})
		cancel()
		if err != nil {
			attempts = append(attempts, UploadAttempt{Candidate: cand, Detail: err.Error()})
			s.logger.Warn("upload attempt failed",
				zap.String("bucket", cand.Name),
				zap.String("source", string(cand.Source)),
				zap.String("path", objectPath),
				zap.Error(err))
			continue
		}
		attempts = append(attempts, UploadAttempt{Candidate: cand, OK: true})
		s.gate.remember(cand.Name)

		// One signed URL for the freshly written object. Unlike batch
		// materialization there is no sibling to fall back on, so a failure
		// here fails the whole call.
		urlCtx, cancel := context.WithTimeout(ctx, s.timeout)
		u, err := s.client.PresignedGet(urlCtx, cand.Name, objectPath, PresignTTL)
		cancel()
		if err != nil {
			return UploadResult{}, fmt.Errorf("object stored at %s/%s but signing its URL failed: %w", cand.Name, objectPath, err)
		}

		return UploadResult{
			Bucket:   cand,
			Path:     objectPath,
			URL:      u.String(),
			Attempts: attempts,
		}, nil
	}

	return UploadResult{}, &UploadExhaustedError{Attempts: attempts}
}

// validateObjectPath rejects paths that would escape the caller-owned key
// convention: empty, absolute, dot-escaped or folder-shaped.
func validateObjectPath(p string) error {
	switch {
	case p == "":
		return fmt.Errorf("%w: path is required", ErrInvalidPath)
	case strings.HasPrefix(p, "/"):
		return fmt.Errorf("%w: path must be relative, got %q", ErrInvalidPath, p)
	case strings.HasSuffix(p, "/"):
		return fmt.Errorf("%w: path must not be a folder, got %q", ErrInvalidPath, p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: path contains invalid segment %q", ErrInvalidPath, p)
		}
	}
	return nil
}
