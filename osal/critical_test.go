package osal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCritical_EnterExit(t *testing.T) {
	key := EnterCritical()
	ExitCritical(key)
	assert.Equal(t, 0, criticalDepth)
}

func TestCritical_Nested(t *testing.T) {
	k1 := EnterCritical()
	k2 := EnterCritical()
	ExitCritical(k2)
	ExitCritical(k1)
	assert.Equal(t, 0, criticalDepth)
}

func TestCritical_UnbalancedExitPanics(t *testing.T) {
	key := EnterCritical()
	defer ExitCritical(key)
	assert.Panics(t, func() {
		ExitCritical(key + 1)
	})
}
