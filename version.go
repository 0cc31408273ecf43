package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Info contains version and build information.
type Info struct {
	Version   string
	Revision  string
	BuildTime string
	GoVersion string
	Platform  string
}

// Get returns the current version information.
func Get() Info {
	info := Info{
		Version:   "unknown",
		Revision:  "unknown",
		BuildTime: "unknown",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	if bi.Main.Version != "(devel)" && bi.Main.Version != "" {
		info.Version = bi.Main.Version
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) > 12 {
				info.Revision = setting.Value[:12]
			} else {
				info.Revision = setting.Value
			}
		case "vcs.time":
			info.BuildTime = setting.Value
		}
	}

	return info
}

// String renders the --version output.
func (i Info) String() string {
	return fmt.Sprintf("prfilter version %s (%s)\nBuilt: %s\nGo version: %s\nPlatform: %s",
		i.Version, i.Revision, i.BuildTime, i.GoVersion, i.Platform)
}
