// Package version provides version information for aliasresolve.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version.
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// CUESDKVersion is the CUE SDK used for .cue configs and settings
// validation, read from the binary's embedded module list.
var CUESDKVersion = cueSDKVersion()

func cueSDKVersion() string {
	info, _ := debug.ReadBuildInfo()
	return moduleVersion(info, "cuelang.org/go")
}

// moduleVersion returns the version of dependency path recorded in info, or
// "unknown".
func moduleVersion(info *debug.BuildInfo, path string) string {
	if info == nil {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil {
			return dep.Replace.Version
		}
		return dep.Version
	}
	return "unknown"
}

// Info is what the version command reports.
type Info struct {
	Version       string `json:"version" yaml:"version"`
	GitCommit     string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate     string `json:"buildDate" yaml:"buildDate"`
	GoVersion     string `json:"goVersion" yaml:"goVersion"`
	CUESDKVersion string `json:"cueSDKVersion" yaml:"cueSDKVersion"`
}

// GetInfo returns the current version information.
func GetInfo() Info {
	return Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: CUESDKVersion,
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("aliasresolve:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n\nCUE:\n  SDK Version: %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.CUESDKVersion)
}
