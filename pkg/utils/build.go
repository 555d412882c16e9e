// Build information is injected with -ldflags "-X github.com/nobletooth/linear/pkg/utils.Version=v1.2.3" and friends.
// Missing values fall back to the module build info embedded by the Go toolchain.

package utils

import (
	"log/slog"
	"runtime/debug"
	"strconv"
	"time"
)

const develVersion = "v0.0.0-devel"

var (
	TestMode   string // Should be true when running tests.
	IsTestMode bool
	Version    string
	Commit     string
	BuildTime  string
	StartTime  time.Time
)

func init() {
	StartTime = time.Now()

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		if Version == "" && buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
			Version = buildInfo.Main.Version
		}
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if Commit == "" {
					Commit = setting.Value
				}
			case "vcs.time":
				if BuildTime == "" {
					BuildTime = setting.Value
				}
			}
		}
	}

	// If build info is not set, make that clear.
	if Version == "" {
		Version = develVersion
	}
	if Commit == "" {
		Commit = "unknown"
	}
	if BuildTime == "" {
		BuildTime = "unknown"
	}
	if len(TestMode) > 0 {
		if isTestMode, err := strconv.ParseBool(TestMode); err == nil {
			IsTestMode = isTestMode
		} else {
			slog.Warn("Failed to parse TestMode build flag, defaulting to false", "error", err)
		}
	}
}
