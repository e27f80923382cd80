package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_DefaultLevelIsWarn(t *testing.T) {
	log, err := New("dev", "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		mode  string
		level string
		want  zapcore.Level
	}{
		{"dev", "debug", zapcore.DebugLevel},
		{"prod", "info", zapcore.InfoLevel},
		{"production", "ERROR", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		log, err := New(tt.mode, tt.level)
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(tt.want), "%s/%s", tt.mode, tt.level)
		if tt.want > zapcore.DebugLevel {
			assert.False(t, log.Core().Enabled(tt.want-1), "%s/%s", tt.mode, tt.level)
		}
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("dev", "loud")
	require.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
