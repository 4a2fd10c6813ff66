package image

import (
	"github.com/distribution/reference"
)

// SplitTagDigest separates a full image reference into its name, tag, and
// digest parts without normalizing the name. It exists so callers holding a
// complete reference (name:tag, name@digest) can satisfy the Classify
// precondition that the input carries neither suffix.
//
// The split uses the distribution grammar directly rather than
// reference.ParseAnyReference, which would rewrite bare names into their
// docker.io/library canonical form and change what Classify sees. A leading
// https:// or http:// scheme is stripped first, mirroring Classify's own
// normalization.
func SplitTagDigest(ref string) (name, tag, digest string, err error) {
	stripped := NormalizeScheme(ref)
	if stripped == "" {
		return "", "", "", ErrEmptyImageReference
	}

	m := reference.ReferenceRegexp.FindStringSubmatch(stripped)
	if m == nil {
		return "", "", "", ErrInvalidImageReference
	}
	return m[1], m[2], m[3], nil
}
