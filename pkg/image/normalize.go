package image

import "strings"

// Scheme prefixes stripped during normalization. Matching is case-sensitive
// and at most one prefix is removed.
const (
	httpsPrefix = "https://"
	httpPrefix  = "http://"
)

// NormalizeScheme strips a single leading https:// or http:// prefix from a
// raw reference and returns the remainder unchanged otherwise. No whitespace
// trimming, no case folding, no tag or digest handling happens here; callers
// are expected to pass references with any :tag or @digest suffix already
// removed (see SplitTagDigest).
func NormalizeScheme(raw string) string {
	if strings.HasPrefix(raw, httpsPrefix) {
		return raw[len(httpsPrefix):]
	}
	if strings.HasPrefix(raw, httpPrefix) {
		return raw[len(httpPrefix):]
	}
	return raw
}
