package gateway

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func notFoundErr() error {
	return minio.ErrorResponse{StatusCode: 404, Code: "NoSuchBucket", Message: "bucket does not exist"}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(notFoundErr()))
	assert.True(t, isNotFound(minio.ErrorResponse{StatusCode: 200, Code: "NoSuchKey"}))
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", notFoundErr())))
	assert.False(t, isNotFound(minio.ErrorResponse{StatusCode: 403, Code: "AccessDenied"}))
	assert.False(t, isNotFound(errors.New("connection refused")))
	assert.False(t, isNotFound(nil))
}

func TestUploadExhaustedError_Message(t *testing.T) {
	err := &UploadExhaustedError{Attempts: []UploadAttempt{
		{Candidate: BucketCandidate{Name: "a.appspot.com"}, Detail: "access denied"},
		{Candidate: BucketCandidate{Name: "a.firebasestorage.app"}, Detail: "timeout"},
	}}
	assert.Contains(t, err.Error(), "a.appspot.com: access denied")
	assert.Contains(t, err.Error(), "a.firebasestorage.app: timeout")
}
