package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoknow/music-hub/internal/config"
	"github.com/twoknow/music-hub/internal/slots"
)

func TestResolveBinary_EnvOverride(t *testing.T) {
	t.Setenv(config.EnvPlayerBinary, "/env/mpv")
	l := NewLauncher(config.PathsAt(t.TempDir()), &config.Config{
		Player: config.PlayerConfig{Binary: "/config/mpv"},
	})

	exe, err := l.resolveBinary()
	require.NoError(t, err)
	assert.Equal(t, "/env/mpv", exe)
}

func TestResolveBinary_ConfigFallback(t *testing.T) {
	t.Setenv(config.EnvPlayerBinary, "")
	l := NewLauncher(config.PathsAt(t.TempDir()), &config.Config{
		Player: config.PlayerConfig{Binary: "/config/mpv"},
	})

	exe, err := l.resolveBinary()
	require.NoError(t, err)
	assert.Equal(t, "/config/mpv", exe)
}

func TestResolveBinary_NotFound(t *testing.T) {
	t.Setenv(config.EnvPlayerBinary, "")
	t.Setenv("PATH", "")
	l := NewLauncher(config.PathsAt(t.TempDir()), &config.Config{})

	_, err := l.resolveBinary()
	require.Error(t, err)
	assert.True(t, IsSpawnFailure(err))
	assert.Contains(t, err.Error(), config.EnvPlayerBinary)
}

func TestBuildArgs(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	socket := slots.SocketForSlot(paths.Runtime, "0")

	testCases := []struct {
		name    string
		cfg     config.Config
		ytdlp   string
		targets []string
		want    []string
	}{
		{
			name:    "defaults",
			targets: []string{"a.mp3"},
			want:    []string{"--no-video", "--input-ipc-server=" + socket, "--ytdl=yes", "a.mp3"},
		},
		{
			name:    "video enabled",
			cfg:     config.Config{Player: config.PlayerConfig{Video: true}},
			targets: []string{"clip.webm"},
			want:    []string{"--input-ipc-server=" + socket, "--ytdl=yes", "clip.webm"},
		},
		{
			name:    "resolver found",
			ytdlp:   "/opt/yt-dlp",
			targets: []string{"https://example.com/x"},
			want: []string{
				"--no-video", "--input-ipc-server=" + socket,
				"--ytdl=yes", "--ytdl-path=/opt/yt-dlp", "https://example.com/x",
			},
		},
		{
			name: "extra args precede targets",
			cfg: config.Config{
				Player: config.PlayerConfig{ExtraArgs: []string{"--volume=70"}},
			},
			targets: []string{"a.mp3", "b.mp3"},
			want: []string{
				"--no-video", "--input-ipc-server=" + socket,
				"--ytdl=yes", "--volume=70", "a.mp3", "b.mp3",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			l := NewLauncher(paths, &cfg)
			got := l.buildArgs(socket, "launch-1", tc.ytdlp, tc.targets)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildArgs_HookScriptWiring(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	cfg := &config.Config{}
	l := NewLauncher(paths, cfg)

	installed, err := InstallHookScript(paths)
	require.NoError(t, err)
	assert.True(t, installed)

	args := l.buildArgs(slots.SocketForSlot(paths.Runtime, "1"), "launch-42", "", nil)

	assert.Contains(t, args, "--script="+paths.ScriptFile)
	found := false
	for _, arg := range args {
		if arg == "--script-opts=musichub-events_file="+paths.EventsFile+",musichub-launch_id=launch-42" {
			found = true
		}
	}
	assert.True(t, found, "event sink and launch id must be wired via --script-opts, got %v", args)
}

func TestInstallHookScript_KeepsExisting(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	require.NoError(t, paths.EnsureDirs())
	require.NoError(t, os.WriteFile(paths.ScriptFile, []byte("-- customised"), 0644))

	installed, err := InstallHookScript(paths)
	require.NoError(t, err)
	assert.False(t, installed)

	data, err := os.ReadFile(paths.ScriptFile)
	require.NoError(t, err)
	assert.Equal(t, "-- customised", string(data))
}

func TestResolveYtdlp(t *testing.T) {
	t.Setenv("PATH", "")

	t.Run("config hint wins", func(t *testing.T) {
		l := NewLauncher(config.PathsAt(t.TempDir()), &config.Config{
			Tools: &config.ToolsConfig{Ytdlp: "/hint/yt-dlp"},
		})
		assert.Equal(t, "/hint/yt-dlp", l.resolveYtdlp("/somewhere/mpv"))
	})

	t.Run("alongside player binary", func(t *testing.T) {
		dir := t.TempDir()
		playerExe := filepath.Join(dir, "mpv")
		sibling := filepath.Join(dir, "yt-dlp")
		require.NoError(t, os.WriteFile(playerExe, []byte("#!/bin/sh\n"), 0755))
		require.NoError(t, os.WriteFile(sibling, []byte("#!/bin/sh\n"), 0755))

		l := NewLauncher(config.PathsAt(t.TempDir()), &config.Config{})
		assert.Equal(t, sibling, l.resolveYtdlp(playerExe))
	})

	t.Run("nothing found degrades silently", func(t *testing.T) {
		l := NewLauncher(config.PathsAt(t.TempDir()), &config.Config{})
		assert.Equal(t, "", l.resolveYtdlp(filepath.Join(t.TempDir(), "mpv")))
	})
}
