package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLoggerWithWriter(&buf, "warn")

	log.Infof("hidden %d", 1)
	log.Warnf("shown %d", 2)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "shown 2", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])
}

func TestSlogLogger_ErrorfAttachesError(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLoggerWithWriter(&buf, "")

	log.Errorf(errors.New("boom"), "save failed for %s", "orders")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "save failed for orders", rec["msg"])
	assert.Equal(t, "boom", rec["error"])
}
