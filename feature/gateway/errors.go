package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
)

// ErrNoCandidates means the configuration yields zero bucket names. This is
// fatal for every endpoint: there is nothing to fall back to.
var ErrNoCandidates = errors.New("no candidate bucket names could be derived from configuration")

// ErrInvalidPath marks a caller-supplied object path the gateway refuses to
// store or resolve. Handlers map it to a 400 rather than a 500.
var ErrInvalidPath = errors.New("invalid object path")

// ErrObjectNotFound means the requested object does not exist in the
// resolved bucket. Handlers map it to a 404.
var ErrObjectNotFound = errors.New("object not found")

// NoUsableBucketError means every candidate failed its existence probe.
// Tried preserves the full trail, one entry per probed candidate.
type NoUsableBucketError struct {
	Tried []ProbeAttempt
}

func (e *NoUsableBucketError) Error() string {
	parts := make([]string, len(e.Tried))
	for i, p := range e.Tried {
		if p.Detail != "" {
			parts[i] = fmt.Sprintf("%s (probe error: %s)", p.Candidate.Name, p.Detail)
		} else {
			parts[i] = fmt.Sprintf("%s (not found)", p.Candidate.Name)
		}
	}
	return "no usable bucket among candidates: " + strings.Join(parts, ", ")
}

// UploadExhaustedError means every candidate bucket rejected the upload.
// Attempts preserves the full trail for the caller's diagnostics.
type UploadExhaustedError struct {
	Attempts []UploadAttempt
}

func (e *UploadExhaustedError) Error() string {
	parts := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		parts[i] = fmt.Sprintf("%s: %s", a.Candidate.Name, a.Detail)
	}
	return "upload failed on every candidate bucket: " + strings.Join(parts, ", ")
}

// isNotFound reports whether err is the provider saying the bucket or key
// does not exist, as opposed to a transport failure.
func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		if resp.StatusCode == http.StatusNotFound {
			return true
		}
		switch resp.Code {
		case "NoSuchBucket", "NoSuchKey":
			return true
		}
	}
	return false
}
