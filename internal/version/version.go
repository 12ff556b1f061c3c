package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is overridden at build time with
// -ldflags "-X github.com/Xunop/e-library/internal/version.Version=x.y.z".
var Version = "0.1.0"

// GetCurrentVersion returns the running version without the leading "v".
func GetCurrentVersion() string {
	return strings.TrimPrefix(Version, "v")
}

// IsValid reports whether v is a semantic version, with or without "v".
func IsValid(v string) bool {
	return semver.IsValid(canonical(v))
}

// IsVersionGreaterThan reports whether a > b. Invalid versions sort lowest.
func IsVersionGreaterThan(a, b string) bool {
	return semver.Compare(canonical(a), canonical(b)) > 0
}

func canonical(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
