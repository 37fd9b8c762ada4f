package log_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aakashsubedi/NoteSpace/pkg/log"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", log.RequestID(ctx))

	ctx = log.WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", log.RequestID(ctx))
}

func TestInit(t *testing.T) {
	t.Run("console with file sink", func(t *testing.T) {
		l := log.Init(log.ZapConfig{
			Level:    "debug",
			Mode:     log.ModeDevelopment,
			Encoding: log.EncodingConsole,
			FilePath: filepath.Join(t.TempDir(), "notespace.log"),
		})
		require.NotNil(t, l)
		l.Infof(log.WithRequestID(context.Background(), "abc"), "hello %s", "world")
	})

	t.Run("bad level falls back", func(t *testing.T) {
		l := log.Init(log.ZapConfig{Level: "loud", Mode: log.ModeProduction, Encoding: log.EncodingJSON})
		require.NotNil(t, l)
		l.Debug(context.Background(), "dropped")
	})
}
