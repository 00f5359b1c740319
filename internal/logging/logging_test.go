// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter_Levels(t *testing.T) {
	tests := []struct {
		level     string
		wantInfo  bool
		wantWarn  bool
		wantError bool
	}{
		{level: "", wantWarn: true, wantError: true},
		{level: "debug", wantInfo: true, wantWarn: true, wantError: true},
		{level: "info", wantInfo: true, wantWarn: true, wantError: true},
		{level: "error", wantError: true},
	}
	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := NewWithWriter(tt.level, &buf)
			require.NoError(t, err)

			logger.Info("info-line")
			logger.Warn("warn-line", zap.Int("page", 2))
			logger.Error("error-line")
			require.NoError(t, logger.Sync())

			out := buf.String()
			assert.Equal(t, tt.wantInfo, bytes.Contains([]byte(out), []byte("info-line")))
			assert.Equal(t, tt.wantWarn, bytes.Contains([]byte(out), []byte("warn-line")))
			assert.Equal(t, tt.wantError, bytes.Contains([]byte(out), []byte("error-line")))
		})
	}
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter("warn", &buf)
	require.NoError(t, err)

	logger.Warn("page text unavailable", zap.String("file", "a.pdf"), zap.Int("page", 2))

	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), `"page": 2`)
	assert.Contains(t, buf.String(), `"file": "a.pdf"`)
}

func TestNewWithWriter_BadLevel(t *testing.T) {
	_, err := NewWithWriter("chatty", &bytes.Buffer{})
	assert.Error(t, err)
}
