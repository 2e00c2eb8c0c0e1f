package commands

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoknow/music-hub/internal/player"
	"github.com/twoknow/music-hub/internal/slots"
	"github.com/twoknow/music-hub/pkg/mpvipc"
)

// TestRootCommand_ShowsHelpWhenNoSubcommand tests that bare musicctl
// prints usage instead of silently succeeding
func TestRootCommand_ShowsHelpWhenNoSubcommand(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, "Usage:", "Help should be displayed")
	assert.Contains(t, output, "musicctl", "Help should show command name")
	for _, sub := range []string{"play", "layer", "vol", "slots", "stop"} {
		assert.Contains(t, output, sub, "Help should list the %s command", sub)
	}
}

// TestRootCommand_RejectsUnknownFlags tests that typo'd flags error out
// instead of being silently ignored
func TestRootCommand_RejectsUnknownFlags(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--no-such-flag"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestRootCommand_VersionFlag(t *testing.T) {
	SetVersionInfo("1.2.3", "abc1234", "2026-01-02")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--version"})

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1.2.3")
	assert.Contains(t, buf.String(), "commit: abc1234")
}

func TestPlayCommand_RequiresTarget(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"play"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestVolCommand_RejectsNonNumericLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"vol", "0", "loud"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "volume must be a whole number")
	assert.Contains(t, err.Error(), `"loud"`)
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "slot not found",
			err:     &slots.NotFoundError{SlotID: "3"},
			wantMsg: "slot 3 is not active",
		},
		{
			name:    "wrapped slot not found",
			err:     fmt.Errorf("vol: %w", &slots.NotFoundError{SlotID: "7"}),
			wantMsg: "slot 7 is not active",
		},
		{
			name:    "capacity exhausted",
			err:     &slots.CapacityError{Max: 100},
			wantMsg: "no free player slots",
		},
		{
			name:    "spawn failure",
			err:     &player.SpawnError{Reason: "no player binary found"},
			wantMsg: "failed to start player",
		},
		{
			name:    "protocol error",
			err:     &mpvipc.ProtocolError{Op: "loadfile", Reason: "invalid parameter"},
			wantMsg: "player rejected the command",
		},
		{
			name:    "unreachable",
			err:     fmt.Errorf("/tmp/sock: %w", mpvipc.ErrUnreachable),
			wantMsg: "player not reachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := describeError(tt.err)
			require.Error(t, got)
			assert.Contains(t, got.Error(), tt.wantMsg)
		})
	}
}

func TestDescribeError_PassesUnknownErrorsThrough(t *testing.T) {
	plain := errors.New("disk full")
	assert.Equal(t, plain, describeError(plain))
}
