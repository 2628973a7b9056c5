package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{" INFO ", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"loud", InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestInitLogger(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	require.NoError(t, InitLogger("warn", "json"))
	assert.False(t, Logger.Core().Enabled(InfoLevel))
	assert.True(t, Logger.Core().Enabled(WarnLevel))

	require.NoError(t, InitLogger("debug", "text"))
	assert.True(t, Logger.Core().Enabled(DebugLevel))

	assert.Error(t, InitLogger("info", "xml"))
	assert.Error(t, InitLogger("nope", "text"))
}
