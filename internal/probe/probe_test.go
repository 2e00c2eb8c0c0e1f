package probe

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlive_OwnProcess(t *testing.T) {
	p := System()
	assert.True(t, p.Alive(os.Getpid()))
}

func TestAlive_InvalidPids(t *testing.T) {
	p := System()

	testCases := []struct {
		name string
		pid  int
	}{
		{name: "zero", pid: 0},
		{name: "negative", pid: -1},
		{name: "never existed", pid: 99999999},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, p.Alive(tc.pid))
		})
	}
}
