package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{"empty", "", zerolog.Disabled, false},
		{"disabled", "disabled", zerolog.Disabled, false},
		{"off", "OFF", zerolog.Disabled, false},
		{"debug", "debug", zerolog.DebugLevel, false},
		{"padded warn", "  Warn ", zerolog.WarnLevel, false},
		{"unknown", "chatty", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.level)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { SetGlobalLogger(zerolog.Nop()) })

	var buf bytes.Buffer
	require.NoError(t, Configure(&buf, "debug"))

	Debug().Str("url", "https://example.com").Msg("fetching schema")
	assert.Contains(t, buf.String(), "fetching schema")
	assert.Contains(t, buf.String(), "https://example.com")

	buf.Reset()
	require.NoError(t, Configure(&buf, "disabled"))
	Info().Msg("should not appear")
	assert.Empty(t, buf.String())
}

func TestConfigure_InvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Configure(&buf, "loud"))
}
