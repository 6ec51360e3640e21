// Package gateway implements the object-storage gateway for survey photos.
//
// The deployment's bucket identity is ambiguous: two legal naming
// conventions, an optional environment override, and eventually-consistent
// existence checks. Every operation therefore starts from the same
// resolution pipeline instead of trusting a single configured name.
//
// # Components
//
//   - Resolve: enumerates candidate bucket identities in priority order
//     (override, default, naming-convention siblings), deduplicated.
//   - Gate: probes candidates sequentially and returns the first existing
//     bucket, memoizing the last success to reorder later tries.
//   - Lister: lists virtual folders below a key prefix via delimiter
//     semantics, falling back to deriving folder names from flat keys.
//   - Materializer: converts batches of object paths into signed download
//     URLs with a bounded worker pool; per-item failures stay per-item.
//   - Upload (Service method): stores a payload, retrying across candidates
//     and keeping the full attempt trail for diagnostics.
//   - Service/Handler: wire the pieces behind the HTTP endpoints.
//
// # Failure policy
//
// Listing endpoints prefer degraded or empty data over errors, because the
// admin UI treats an empty folder as a normal state. Upload and health are
// loud: a silent upload failure would leave survey records pointing at
// photos that do not exist.
//
// # HTTP Endpoints
//
//   - GET  /storage/health  : resolution dry run with diagnostics.
//   - POST /storage/objects : store a payload, returns path + signed URL.
//   - GET  /storage/objects : signed URL for one existing object.
//   - GET  /storage/listing : days, surveyors or files under the photo root.
package gateway
