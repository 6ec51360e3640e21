// Package storage provides an abstraction layer for the object storage
// backing survey photos.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the gateway needs: bucket existence probes, uploads, flat and
// delimiter-paged listings, and signed download URLs. The abstraction works
// against AWS S3, self-hosted MinIO, and GCS in S3-interoperability mode.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to a candidate bucket.
//   - PutObject: Uploads content (with size and options).
//   - StatObject: Fetches metadata without downloading.
//   - ListPage: One ListObjectsV2 round trip with delimiter and
//     continuation-token support, for hierarchical "folder" listings.
//   - PresignedGet: Issues a signed download URL for one object.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "project.appspot.com")
package storage
