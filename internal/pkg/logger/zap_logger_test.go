package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "softdelete.log")
	l := NewZapLogger(path, true)

	l.Debug("CascadeSoftDelete", "not in file", nil)
	l.Info("CascadeSoftDelete", "Cascade soft delete set", map[string]interface{}{"affected": 3})
	_ = l.Sync() // stdout may refuse fsync

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"Cascade soft delete set"`)
	assert.Contains(t, string(data), `"module":"CascadeSoftDelete"`)
	assert.Contains(t, string(data), `"affected":3`)
	assert.NotContains(t, string(data), "not in file")
}

func TestZapLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Warn("SingleSoftDelete", "no details", nil)
	l.Error("SingleSoftDelete", "commit failed", map[string]interface{}{"error": "locked"})

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "SingleSoftDelete", entries[0].ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{}, entries[0].ContextMap()["details"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "locked", entries[1].ContextMap()["error_ref"])
}
