// Package build provides version and build information for shipnote.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

import "runtime"

// Version is bumped by `shipnote release` and must stay the only line
// assigning it. Commit and BuildDate are set via ldflags during build.
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Commit == "unknown"
}

// Info is the build information printed by `shipnote version`.
type Info struct {
	Version   string `yaml:"version"`
	Commit    string `yaml:"commit"`
	BuildDate string `yaml:"build_date"`
	GoVersion string `yaml:"go_version"`
	Platform  string `yaml:"platform"`
}

// GetInfo returns the current build information.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
