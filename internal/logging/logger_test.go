package logging

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false, true)

	l.Info("provisioned %s", "rg-myapp-prod")
	l.Warn("complete mode")
	l.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "✓ provisioned rg-myapp-prod\n")
	assert.Contains(t, out, "⚠ complete mode\n")
	assert.Contains(t, out, "✗ boom\n")
}

func TestLogger_DebugSuppressed(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, false, true)

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l = NewWithWriter(&buf, true, true)
	l.Debug("shown")
	assert.Contains(t, buf.String(), "[DEBUG] shown")
}

func TestSecret_NeverPrints(t *testing.T) {
	s := Secret("hunter2")

	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%s", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%v", s))
	assert.Equal(t, "[REDACTED]", fmt.Sprintf("%#v", s))
	assert.NotContains(t, fmt.Sprintf("%s %v %#v", s, s, s), "hunter2")
}
