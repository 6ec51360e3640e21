package gateway

import (
	"strings"

	"survey-gateway/core/storage"
)

// The two legal bucket-naming conventions. Deployments created before the
// storage migration carry the legacy suffix, newer ones the modern suffix,
// and misconfigured environments routinely mix them up.
const (
	suffixLegacy = ".appspot.com"
	suffixModern = ".firebasestorage.app"
)

// siblingName maps a bucket name to its variant under the other naming
// convention. Names outside both suffix families have no sibling.
func siblingName(name string) (string, bool) {
	switch {
	case strings.HasSuffix(name, suffixLegacy):
		return strings.TrimSuffix(name, suffixLegacy) + suffixModern, true
	case strings.HasSuffix(name, suffixModern):
		return strings.TrimSuffix(name, suffixModern) + suffixLegacy, true
	}
	return "", false
}

// Resolve enumerates the plausible bucket identities for this deployment in
// priority order: the explicit override, the default (configured name, or
// derived from the project ID), then the naming-convention sibling of each.
// Duplicates are dropped keeping first-seen order. Resolve is pure; an empty
// result is the caller's signal of a configuration error.
func Resolve(cfg storage.Config) []BucketCandidate {
	var out []BucketCandidate
	seen := make(map[string]bool)
	add := func(name string, source CandidateSource) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, BucketCandidate{Name: name, Source: source})
	}

	add(cfg.BucketOverride, SourceOverride)

	def := cfg.Bucket
	if def == "" && cfg.Project != "" {
		def = cfg.Project + suffixLegacy
	}
	add(def, SourceDefault)

	// Siblings come after every explicitly named bucket.
	named := make([]BucketCandidate, len(out))
	copy(named, out)
	for _, c := range named {
		if sib, ok := siblingName(c.Name); ok {
			add(sib, SourceSibling)
		}
	}

	return out
}
