package resolver

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/kyoku-cli/kyoku/filesystem"
	"github.com/samber/mo"
)

// FindMuxer locates the ffmpeg binary used to merge separate audio and
// video downloads. A bundled binary next to the executable takes priority
// over whatever is on PATH, so a packaged release keeps working on systems
// without a system-wide ffmpeg.
func FindMuxer() mo.Option[string] {
	name := "ffmpeg"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	if exe, err := os.Executable(); err == nil {
		bundled := filepath.Join(filepath.Dir(exe), name)
		if exists, err := filesystem.API().Exists(bundled); err == nil && exists {
			return mo.Some(bundled)
		}
	}

	if path, err := exec.LookPath(name); err == nil {
		return mo.Some(path)
	}

	return mo.None[string]()
}
