// Package version exposes the build version of edfc.
package version

// version is overridden at build time via
// -ldflags "-X github.com/alexzk1/ed-fc-companion/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Set by the linker.
var version = "dev"

// GetVersion returns the build version, "dev" for local builds.
func GetVersion() string {
	if version == "" {
		return "dev"
	}
	return version
}
