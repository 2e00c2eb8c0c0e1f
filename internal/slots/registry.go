package slots

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/gofrs/flock"

	"github.com/twoknow/music-hub/internal/config"
	"github.com/twoknow/music-hub/internal/probe"
)

// Registry persists slot records in a single JSON file. Reads never
// fail (a broken file is an empty registry); every mutation runs under
// an exclusive file lock and rewrites the file whole, so concurrent
// invocations cannot allocate the same slot id or interleave writes.
type Registry struct {
	path     string
	lockPath string
	probe    probe.Probe
}

// NewRegistry returns a registry rooted at the runtime paths, using p
// to decide which recorded processes are still alive.
func NewRegistry(paths config.Paths, p probe.Probe) *Registry {
	return &Registry{
		path:     paths.Registry,
		lockPath: paths.LockFile,
		probe:    p,
	}
}

// Load reads the registry file. A missing, unreadable or malformed
// file yields an empty registry; corruption must never block a command.
func (r *Registry) Load() map[string]Record {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return map[string]Record{}
	}

	var reg map[string]Record
	if err := json.Unmarshal(data, &reg); err != nil {
		slog.Warn("slot registry unreadable, starting fresh", "path", r.path, "err", err)
		return map[string]Record{}
	}
	if reg == nil {
		return map[string]Record{}
	}
	return reg
}

// Save rewrites the registry file via a temp file and rename, keeping
// it human-inspectable (indented JSON).
func (r *Registry) Save(reg map[string]Record) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode slot registry: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write slot registry: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace slot registry: %w", err)
	}
	return nil
}

// Update applies fn to a freshly loaded registry under the file lock
// and persists the result. fn mutates the map in place; returning an
// error abandons the update. Slot id allocation and registration must
// happen inside a single Update so they act as one step.
func (r *Registry) Update(fn func(reg map[string]Record) error) (map[string]Record, error) {
	lock, err := r.lock()
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	reg := r.Load()
	if err := fn(reg); err != nil {
		return nil, err
	}
	if err := r.Save(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Prune drops records whose process is no longer alive and returns the
// remaining live records. The file is rewritten only when something
// was dropped. Every command runs this before trusting the registry.
func (r *Registry) Prune() (map[string]Record, error) {
	lock, err := r.lock()
	if err != nil {
		return nil, err
	}
	defer lock.Unlock()

	reg := r.Load()
	changed := false
	for id, rec := range reg {
		if r.probe.Alive(rec.PID) {
			continue
		}
		slog.Debug("pruning dead slot", "slot", id, "pid", rec.PID)
		delete(reg, id)
		changed = true
	}

	if changed {
		if err := r.Save(reg); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register records a slot, replacing any previous record for the same id.
func (r *Registry) Register(rec Record) error {
	_, err := r.Update(func(reg map[string]Record) error {
		reg[rec.SlotID] = rec
		return nil
	})
	return err
}

// Unregister removes a slot record. Removing an absent slot is a no-op.
func (r *Registry) Unregister(slotID string) error {
	_, err := r.Update(func(reg map[string]Record) error {
		delete(reg, slotID)
		return nil
	})
	return err
}

func (r *Registry) lock() (*flock.Flock, error) {
	if err := os.MkdirAll(filepath.Dir(r.lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	lock := flock.New(r.lockPath)
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock slot registry: %w", err)
	}
	return lock, nil
}

// NextSlotID returns the smallest integer id not present in reg.
func NextSlotID(reg map[string]Record) (string, error) {
	for i := 0; i < MaxSlots; i++ {
		id := strconv.Itoa(i)
		if _, taken := reg[id]; !taken {
			return id, nil
		}
	}
	return "", &CapacityError{Max: MaxSlots}
}

// SortedIDs returns the registry's slot ids in numeric order, so
// listings and batch operations walk slots deterministically.
func SortedIDs(reg map[string]Record) []string {
	ids := make([]string, 0, len(reg))
	for id := range reg {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA != nil || errB != nil {
			return ids[i] < ids[j]
		}
		return a < b
	})
	return ids
}
