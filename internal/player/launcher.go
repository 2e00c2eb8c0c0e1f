// Package player starts detached mpv processes bound to slot control
// sockets. A launched player outlives the CLI invocation; only its pid
// and socket are kept, in the slot registry.
package player

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/twoknow/music-hub/internal/config"
	"github.com/twoknow/music-hub/internal/slots"
)

// Handle identifies a freshly spawned player process.
type Handle struct {
	PID       int
	LaunchID  string
	Socket    string
	StartedAt time.Time
}

// Launcher builds player argv lines from the configuration and starts
// detached processes.
type Launcher struct {
	paths config.Paths
	cfg   *config.Config
}

// NewLauncher creates a launcher for the given installation.
func NewLauncher(paths config.Paths, cfg *config.Config) *Launcher {
	return &Launcher{paths: paths, cfg: cfg}
}

// Spawn starts a detached player bound to slotID's control socket,
// queueing targets in order. The returned handle is what the caller
// registers; the process itself is not supervised.
func (l *Launcher) Spawn(slotID string, targets []string) (Handle, error) {
	// The player creates its socket under the runtime directory.
	if err := l.paths.EnsureDirs(); err != nil {
		return Handle{}, &SpawnError{Reason: "failed to prepare runtime directories", Err: err}
	}

	exe, err := l.resolveBinary()
	if err != nil {
		return Handle{}, err
	}

	launchID := uuid.New().String()
	socket := slots.SocketForSlot(l.paths.Runtime, slotID)
	args := l.buildArgs(socket, launchID, l.resolveYtdlp(exe), targets)

	cmd := exec.Command(exe, args...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return Handle{}, &SpawnError{Reason: fmt.Sprintf("failed to start player %s", exe), Err: err}
	}

	pid := cmd.Process.Pid
	// Hand the process over to the OS; the CLI exits long before the
	// player does.
	if err := cmd.Process.Release(); err != nil {
		slog.Debug("failed to release player process handle", "pid", pid, "err", err)
	}

	slog.Debug("spawned player", "slot", slotID, "pid", pid, "socket", socket, "exe", exe, "args", args)
	return Handle{
		PID:       pid,
		LaunchID:  launchID,
		Socket:    socket,
		StartedAt: time.Now().UTC(),
	}, nil
}

// resolveBinary picks the player executable: explicit override first
// (environment, then config file), then PATH.
func (l *Launcher) resolveBinary() (string, error) {
	if exe := l.cfg.PlayerBinary(); exe != "" {
		return exe, nil
	}

	exe, err := exec.LookPath("mpv")
	if err != nil {
		return "", &SpawnError{
			Reason: fmt.Sprintf("mpv not found. Set %s or install mpv", config.EnvPlayerBinary),
			Err:    err,
		}
	}
	return exe, nil
}

// resolveYtdlp locates the stream resolver the player shells out to for
// non-file targets: configured path, alongside the player binary,
// alongside this executable, then PATH. Empty means "let the player
// use whatever it finds"; targets that need resolution just fail later
// inside the player.
func (l *Launcher) resolveYtdlp(playerExe string) string {
	if hint := l.cfg.YtdlpHint(); hint != "" {
		return hint
	}

	name := "yt-dlp"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}

	candidates := []string{
		filepath.Join(filepath.Dir(playerExe), name),
	}
	if self, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(self), name))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	if onPath, err := exec.LookPath(name); err == nil {
		return onPath
	}
	return ""
}

// buildArgs assembles the player argv (minus the executable).
func (l *Launcher) buildArgs(socket, launchID, ytdlp string, targets []string) []string {
	var args []string
	if !l.cfg.Player.Video {
		args = append(args, "--no-video")
	}
	args = append(args, "--input-ipc-server="+socket)

	// Event emission is wired only when the hook script is installed
	// (musicctl init does this); without it the player still works,
	// there is just no history.
	if _, err := os.Stat(l.paths.ScriptFile); err == nil {
		args = append(args,
			"--script="+l.paths.ScriptFile,
			fmt.Sprintf("--script-opts=musichub-events_file=%s,musichub-launch_id=%s",
				l.cfg.EventSink(l.paths), launchID),
		)
	}

	args = append(args, "--ytdl=yes")
	if ytdlp != "" {
		args = append(args, "--ytdl-path="+ytdlp)
	}

	args = append(args, l.cfg.Player.ExtraArgs...)
	args = append(args, targets...)
	return args
}
