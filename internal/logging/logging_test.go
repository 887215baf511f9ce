package logging_test

import (
	"testing"

	"github.com/rpggio/sena/internal/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level  string
		format string
		want   zapcore.Level
	}{
		{"info", "console", zapcore.InfoLevel},
		{"debug", "json", zapcore.DebugLevel},
		{"WARN", "", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			logger, err := logging.New(tt.level, tt.format)
			require.NoError(t, err)
			require.True(t, logger.Core().Enabled(tt.want))
			require.False(t, logger.Core().Enabled(tt.want-1))
		})
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := logging.New("loud", "console")
	require.Error(t, err)

	_, err = logging.New("info", "xml")
	require.Error(t, err)
}
