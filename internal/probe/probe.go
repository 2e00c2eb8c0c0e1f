// Package probe answers one question: is the process with a given pid
// still running? The slot registry uses it to reconcile its records
// against reality before every command.
package probe

// Probe reports whether a process is alive. Implementations never
// return an error; an unanswerable question means the process cannot
// be confirmed alive, which is treated as dead.
type Probe interface {
	Alive(pid int) bool
}

// System returns the Probe backed by the host operating system.
func System() Probe {
	return systemProbe{}
}
