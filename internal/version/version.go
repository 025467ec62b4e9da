package version

import (
	"runtime/debug"

	"github.com/fatih/color"
)

// Version information for the boxfix CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgCyan, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgMagenta, color.Bold)

	// Version is the semantic version of the CLI.
	Version = versionMajorColor.Sprint("0") + "." + versionMinorColor.Sprint("1") + "." + versionPatchColor.Sprint("0") + "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Commit returns the commit hash of the build: the -ldflags value when
// set, otherwise the VCS revision stamped into the binary's build info.
func Commit() string {
	if GitCommit != "" {
		return GitCommit
	}
	return buildSetting("vcs.revision")
}

// Date returns the build date, falling back to the VCS commit time.
func Date() string {
	if BuildDate != "" {
		return BuildDate
	}
	return buildSetting("vcs.time")
}

func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
