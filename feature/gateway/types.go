package gateway

// CandidateSource labels where a bucket candidate came from.
type CandidateSource string

const (
	// SourceOverride marks the explicitly configured bucket name.
	SourceOverride CandidateSource = "override"
	// SourceDefault marks the configured or project-derived default bucket.
	SourceDefault CandidateSource = "default"
	// SourceSibling marks the same bucket under the other naming convention.
	SourceSibling CandidateSource = "sibling"
)

// BucketCandidate is one bucket identity considered for use, in priority order.
type BucketCandidate struct {
	Name   string          `json:"name"`
	Source CandidateSource `json:"source"`
}

// ProbeAttempt records the outcome of one existence probe.
// Detail carries the probe error message; it is empty for a clean "not found".
type ProbeAttempt struct {
	Candidate BucketCandidate `json:"candidate"`
	Found     bool            `json:"found"`
	Detail    string          `json:"detail,omitempty"`
}

// ListingPage is one page of virtual folder names below a key prefix.
// Prefixes are always "<root>/<segment>/"-shaped, whether they came from the
// provider's delimiter listing or were derived from flat keys.
type ListingPage struct {
	Prefixes      []string `json:"items"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
	// Hint carries a diagnostic when the page is empty because every
	// listing mode failed. It goes to the log, never over HTTP: the UI
	// treats an empty folder list as a normal state.
	Hint string `json:"-"`
}

// MaterializedURL is the result of presigning one stored object path.
// Exactly one of URL and Error is set.
type MaterializedURL struct {
	Path  string `json:"path"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// FileEntry is one object in a files listing, with its download URL
// materialized (or the per-item error that prevented it).
type FileEntry struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// UploadAttempt records one upload try against a candidate bucket.
type UploadAttempt struct {
	Candidate BucketCandidate `json:"candidate"`
	OK        bool            `json:"ok"`
	Detail    string          `json:"detail,omitempty"`
}

// UploadResult is the outcome of a successful upload, including the full
// attempt trail so callers can see which candidates were tried first.
type UploadResult struct {
	Bucket   BucketCandidate `json:"bucket"`
	Path     string          `json:"path"`
	URL      string          `json:"url"`
	Attempts []UploadAttempt `json:"attempts"`
}

// HealthReport is the outcome of a resolution dry run: which bucket the
// gateway would use right now, without uploading or listing anything.
type HealthReport struct {
	OK             bool              `json:"ok"`
	ResolvedBucket string            `json:"resolvedBucket,omitempty"`
	Candidates     []BucketCandidate `json:"candidates"`
	Diagnostics    string            `json:"diagnostics,omitempty"`
}
