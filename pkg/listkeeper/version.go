// Package listkeeper carries the build metadata of the listkeeper binary.
package listkeeper

import (
	"fmt"
	"runtime"
	"strings"
)

const (
	Version      = "0.3.0"
	MinGoVersion = "1.24"
)

// BuildInfo is filled in by the build through SetBuildInfo.
var BuildInfo = struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
}{
	Version:   Version,
	GoVersion: runtime.Version(),
}

// SetBuildInfo is called from main with values injected by -ldflags.
func SetBuildInfo(commit, date, goVersion string) {
	BuildInfo.GitCommit = commit
	BuildInfo.BuildDate = date
	if goVersion != "" {
		BuildInfo.GoVersion = goVersion
	}
}

func VersionInfo() string {
	return fmt.Sprintf("listkeeper %s", BuildInfo.Version)
}

// FullVersionInfo returns one "key: value" line per known build field.
func FullVersionInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "listkeeper %s\n", BuildInfo.Version)
	fmt.Fprintf(&b, "Go Version: %s\n", BuildInfo.GoVersion)

	if BuildInfo.GitCommit != "" {
		fmt.Fprintf(&b, "Git Commit: %s\n", BuildInfo.GitCommit)
	}

	if BuildInfo.BuildDate != "" {
		fmt.Fprintf(&b, "Build Date: %s\n", BuildInfo.BuildDate)
	}

	return b.String()
}
