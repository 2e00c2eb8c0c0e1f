package slots

import (
	"errors"
	"fmt"
)

// NotFoundError indicates an explicitly named slot has no live player
type NotFoundError struct {
	SlotID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("slot %s is not active", e.SlotID)
}

// IsNotFound returns true if the error indicates a slot was not active
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// CapacityError indicates every slot id is already registered
type CapacityError struct {
	Max int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("no free player slots (all %d slot ids in use)", e.Max)
}

// IsCapacity returns true if the error indicates slot exhaustion
func IsCapacity(err error) bool {
	var capacity *CapacityError
	return errors.As(err, &capacity)
}
