package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCaptureLogger(t *testing.T) {
	logger, logs := NewCaptureLogger()
	assert.Nil(t, logs.Lines())

	logger.Debug("first", "n", 1)
	logger.Info("second")

	lines := logs.Lines()
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "msg=first")
	assert.Contains(t, lines[0], "n=1")
	assert.Contains(t, lines[1], "level=INFO")
}

func TestNewTestLogger(t *testing.T) {
	logger := NewTestLogger(t)
	logger.Debug("visible under -v")
}
