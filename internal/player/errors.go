package player

import (
	"errors"
	"fmt"
)

// SpawnError indicates a player process could not be started
type SpawnError struct {
	Reason string
	Err    error
}

func (e *SpawnError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}

// IsSpawnFailure returns true if the error indicates a failed player launch
func IsSpawnFailure(err error) bool {
	var spawn *SpawnError
	return errors.As(err, &spawn)
}
