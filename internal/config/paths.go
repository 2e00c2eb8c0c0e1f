package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvHome overrides the base data directory when set.
const EnvHome = "MUSICHUB_HOME"

// Paths holds every filesystem location the CLI reads or writes. All of
// them hang off a single base directory so an installation can be moved
// (or sandboxed in tests) by pointing MUSICHUB_HOME somewhere else.
type Paths struct {
	Base    string // root data directory
	Runtime string // sockets, registry, lock file
	Logs    string // event sink and player logs
	Scripts string // player hook scripts

	ConfigFile string // optional config.yml
	Registry   string // slot registry (JSON)
	LockFile   string // registry mutation lock
	EventsFile string // default event sink (JSONL)
	ScriptFile string // player lifecycle hook script
}

// DefaultPaths resolves the base directory from MUSICHUB_HOME, falling
// back to the per-user config directory.
func DefaultPaths() (Paths, error) {
	if base := os.Getenv(EnvHome); base != "" {
		return PathsAt(base), nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return PathsAt(filepath.Join(dir, "music-hub")), nil
}

// PathsAt builds the full path layout under the given base directory.
func PathsAt(base string) Paths {
	runtime := filepath.Join(base, "runtime")
	logs := filepath.Join(base, "logs")
	scripts := filepath.Join(base, "scripts")

	return Paths{
		Base:       base,
		Runtime:    runtime,
		Logs:       logs,
		Scripts:    scripts,
		ConfigFile: filepath.Join(base, "config.yml"),
		Registry:   filepath.Join(runtime, "mpv_slots.json"),
		LockFile:   filepath.Join(runtime, "mpv_slots.lock"),
		EventsFile: filepath.Join(logs, "mpv_events.jsonl"),
		ScriptFile: filepath.Join(scripts, "musichub.lua"),
	}
}

// EnsureDirs creates the directory tree. Safe to call on every invocation.
func (p Paths) EnsureDirs() error {
	for _, dir := range []string{p.Base, p.Runtime, p.Logs, p.Scripts} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
