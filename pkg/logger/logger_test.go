package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_WritesJSONWithError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogLoggerWithWriter(&buf, slog.LevelInfo)

	log.Errorf(errors.New("boom"), "failed to load %s", "config")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "failed to load config", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
}

func TestSlogLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogLoggerWithWriter(&buf, slog.LevelWarn)

	log.Debugf("debug %d", 1)
	log.Infof("info %d", 2)
	assert.Empty(t, buf.String())

	log.Warnf("warn %d", 3)
	assert.Contains(t, buf.String(), "warn 3")
}
