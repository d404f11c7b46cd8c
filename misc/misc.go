// Package misc keeps small program-wide helpers: application identity and
// build information for logs and the CLI version banner.
package misc

import (
	"runtime/debug"
)

const appName = "fenced"

// set by the build via -ldflags when releasing
var version = ""

// GetAppName returns the short program name used for logs, temp files and the
// CLI banner.
func GetAppName() string {
	return appName
}

// GetVersion returns the release version when set at build time, otherwise
// the module version recorded in build info.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "(devel)"
}

// GetGitHash returns the vcs revision recorded in build info, empty when the
// binary was built outside a checkout.
func GetGitHash() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
