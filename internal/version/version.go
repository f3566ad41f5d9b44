package version

import (
	"fmt"
	"runtime"
)

// These variables are set at build time using ldflags
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func Info() string {
	return fmt.Sprintf("ddschema %s (%s) built on %s with %s",
		Version, Commit, Date, runtime.Version())
}

// UserAgent identifies this client to the upstream spec source.
func UserAgent() string {
	return "ddschema/" + Version
}
