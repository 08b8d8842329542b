package guarded

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X guarded.Version=..." at build time.
var (
	GitCommit = "unknown"
	GitBranch = "unknown"
	BuildTime = "unknown"
	Version   = "unknown"
)

type BuildInfo struct {
	GitCommit string
	GitBranch string
	BuildTime string
	Version   string
	GoVersion string
	MaxProcs  int
}

func GetVersion() BuildInfo {
	return BuildInfo{
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		Version:   Version,
		GoVersion: runtime.Version(),
		MaxProcs:  runtime.GOMAXPROCS(0),
	}
}

func (i BuildInfo) String() string {
	return fmt.Sprintf(
		"guarded playground %s (%s@%s, built %s)\n%s GOMAXPROCS=%d",
		i.Version,
		i.GitBranch,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.MaxProcs,
	)
}
