package image

import "errors"

// Sentinel errors for reference preparation and record validation.
// Classification itself has no error path; Classify is total.
var (
	// ErrEmptyImageReference indicates an empty string was given where a
	// reference was required.
	ErrEmptyImageReference = errors.New("image reference is empty")
	// ErrInvalidImageReference indicates a reference that could not be split
	// into name, tag, and digest parts.
	ErrInvalidImageReference = errors.New("invalid image reference format")
	// ErrProviderTypeMismatch indicates a provider/registry-type pair outside
	// the fixed mapping.
	ErrProviderTypeMismatch = errors.New("registry type not valid for provider")
)
