// Package version records build metadata injected at release time.
package version

import "runtime"

// Populated via -ldflags at build time; the zero values mean a source
// build.
var (
	GitRelease    = "dev"
	GitCommit     = ""
	GitCommitDate = ""
	GoInfo        = runtime.Version()
)
