package slots

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoknow/music-hub/internal/config"
	"github.com/twoknow/music-hub/internal/probe"
)

// stubProbe reports liveness from a fixed table; unknown pids are dead.
type stubProbe map[int]bool

func (s stubProbe) Alive(pid int) bool { return s[pid] }

func newTestRegistry(t *testing.T, p probe.Probe) *Registry {
	t.Helper()
	return NewRegistry(config.PathsAt(t.TempDir()), p)
}

func record(slotID string, pid int) Record {
	return Record{
		SlotID:    slotID,
		Socket:    SocketForSlot("/tmp/runtime", slotID),
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}
}

func TestSocketForSlot_Derivation(t *testing.T) {
	primary := SocketForSlot("/run/hub", Primary)

	// Deterministic and distinct per slot id.
	assert.Equal(t, primary, SocketForSlot("/run/hub", Primary))
	seen := map[string]bool{primary: true}
	for i := 1; i < 6; i++ {
		s := SocketForSlot("/run/hub", strconv.Itoa(i))
		assert.Equal(t, s, SocketForSlot("/run/hub", strconv.Itoa(i)))
		assert.False(t, seen[s], "socket for slot %d collides", i)
		seen[s] = true
	}
}

func TestNextSlotID(t *testing.T) {
	testCases := []struct {
		name string
		used []string
		want string
	}{
		{name: "empty registry", used: nil, want: "0"},
		{name: "dense prefix", used: []string{"0", "1"}, want: "2"},
		{name: "gap is reused", used: []string{"0", "2"}, want: "1"},
		{name: "primary free", used: []string{"1", "2"}, want: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reg := map[string]Record{}
			for _, id := range tc.used {
				reg[id] = record(id, 1000)
			}

			id, err := NextSlotID(reg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestNextSlotID_Exhausted(t *testing.T) {
	reg := map[string]Record{}
	for i := 0; i < MaxSlots; i++ {
		id := strconv.Itoa(i)
		reg[id] = record(id, 1000+i)
	}

	_, err := NextSlotID(reg)
	require.Error(t, err)
	assert.True(t, IsCapacity(err))
	assert.Contains(t, err.Error(), "no free player slots")
}

func TestLoad_MissingFile(t *testing.T) {
	r := newTestRegistry(t, stubProbe{})

	reg := r.Load()
	assert.NotNil(t, reg)
	assert.Empty(t, reg)
}

func TestLoad_CorruptFile(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	require.NoError(t, paths.EnsureDirs())
	require.NoError(t, os.WriteFile(paths.Registry, []byte("{not json"), 0644))

	r := NewRegistry(paths, stubProbe{})
	assert.Empty(t, r.Load())
}

func TestLoad_WrongShape(t *testing.T) {
	paths := config.PathsAt(t.TempDir())
	require.NoError(t, paths.EnsureDirs())
	require.NoError(t, os.WriteFile(paths.Registry, []byte(`["not", "a", "map"]`), 0644))

	r := NewRegistry(paths, stubProbe{})
	assert.Empty(t, r.Load())
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	r := newTestRegistry(t, stubProbe{})

	rec := record("3", 4242)
	require.NoError(t, r.Save(map[string]Record{"3": rec}))

	reg := r.Load()
	require.Len(t, reg, 1)
	assert.Equal(t, rec.SlotID, reg["3"].SlotID)
	assert.Equal(t, rec.Socket, reg["3"].Socket)
	assert.Equal(t, rec.PID, reg["3"].PID)
}

func TestPrune_DropsDeadKeepsAlive(t *testing.T) {
	r := newTestRegistry(t, stubProbe{100: true, 200: false})
	require.NoError(t, r.Save(map[string]Record{
		"0": record("0", 100),
		"1": record("1", 200),
	}))

	reg, err := r.Prune()
	require.NoError(t, err)
	assert.Len(t, reg, 1)
	assert.Contains(t, reg, "0")

	// The rewrite must be durable, not just in-memory.
	assert.Len(t, r.Load(), 1)
}

func TestPrune_RealPids(t *testing.T) {
	r := newTestRegistry(t, probe.System())
	require.NoError(t, r.Save(map[string]Record{
		"0": record("0", os.Getpid()),
		"1": record("1", 99999999),
	}))

	reg, err := r.Prune()
	require.NoError(t, err)
	assert.Contains(t, reg, "0")
	assert.NotContains(t, reg, "1")
}

func TestPrune_NoChangesNoError(t *testing.T) {
	r := newTestRegistry(t, stubProbe{100: true})
	require.NoError(t, r.Save(map[string]Record{"0": record("0", 100)}))

	reg, err := r.Prune()
	require.NoError(t, err)
	assert.Len(t, reg, 1)
}

func TestRegister_ReplacesExisting(t *testing.T) {
	r := newTestRegistry(t, stubProbe{})

	require.NoError(t, r.Register(record("0", 111)))
	require.NoError(t, r.Register(record("0", 222)))

	reg := r.Load()
	require.Len(t, reg, 1)
	assert.Equal(t, 222, reg["0"].PID)
}

func TestUnregister_AbsentSlotIsNoop(t *testing.T) {
	r := newTestRegistry(t, stubProbe{})
	require.NoError(t, r.Register(record("0", 111)))

	require.NoError(t, r.Unregister("7"))
	require.NoError(t, r.Unregister("0"))

	assert.Empty(t, r.Load())
}

func TestUpdate_ErrorAbandonsWrite(t *testing.T) {
	r := newTestRegistry(t, stubProbe{})
	require.NoError(t, r.Register(record("0", 111)))

	_, err := r.Update(func(reg map[string]Record) error {
		delete(reg, "0")
		return assert.AnError
	})
	require.Error(t, err)

	// The failed update must not have touched the file.
	assert.Contains(t, r.Load(), "0")
}

func TestSortedIDs_NumericOrder(t *testing.T) {
	reg := map[string]Record{}
	for _, id := range []string{"10", "2", "0", "9"} {
		reg[id] = record(id, 1000)
	}

	assert.Equal(t, []string{"0", "2", "9", "10"}, SortedIDs(reg))
}
