package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/recfmt/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    slog.Level
		wantErr require.ErrorAssertionFunc
	}{
		"debug":   {input: "debug", want: slog.LevelDebug, wantErr: require.NoError},
		"info":    {input: "INFO", want: slog.LevelInfo, wantErr: require.NoError},
		"warn":    {input: "warn", want: slog.LevelWarn, wantErr: require.NoError},
		"warning": {input: "warning", want: slog.LevelWarn, wantErr: require.NoError},
		"error":   {input: "error", want: slog.LevelError, wantErr: require.NoError},
		"unknown": {input: "loud", want: 0, wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := logging.ParseLevel(tt.input)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "info", "text")
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "records", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown records=2")
}

func TestNewJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "debug", "json")
	require.NoError(t, err)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := logging.New(&buf, "info", "xml")
	require.ErrorIs(t, err, logging.ErrInvalidOption)
	_, err = logging.New(&buf, "loud", "text")
	require.ErrorIs(t, err, logging.ErrInvalidOption)
}
