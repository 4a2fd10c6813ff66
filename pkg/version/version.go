// Package version holds the binary version information surfaced by the CLI.
package version

import "runtime"

// BinaryVersion is the released version of the ric binary. Overridden at
// build time via -ldflags "-X .../pkg/version.BinaryVersion=vX.Y.Z".
var BinaryVersion = "0.2.0"

// String returns the full version string shown by --version, including the
// Go runtime the binary was built with.
func String() string {
	return BinaryVersion + " (" + runtime.Version() + ")"
}
