package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	l, err := New(false, false)
	require.NoError(t, err)
	require.NotNil(t, l)
	assert.False(t, l.Core().Enabled(-1), "debug disabled by default")

	l, err = New(true, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1), "debug enabled on request")
}

func TestTruncateForLog(t *testing.T) {
	assert.Equal(t, "short", TruncateForLog("short", 10))
	assert.Equal(t, "lon...", TruncateForLog("longer text", 3))
	assert.Equal(t, "", TruncateForLog("anything", 0))
	assert.Equal(t, "trimmed", TruncateForLog("  trimmed  ", 10))
}
