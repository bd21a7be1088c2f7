// SPDX-License-Identifier: Unlicense OR MIT

package trippygl

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trippygl.org/internal/gl/gltest"
)

func TestDefaultLoggerSilent(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	d, err := newDevice(gltest.New(), Config{})
	require.NoError(t, err)
	_, err = NewBufferObject(d, 16, StaticDraw)
	require.NoError(t, err)
	d.Dispose()
	d.Dispose()

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=\"trippygl: device created\"")
	assert.Contains(t, out, "msg=\"trippygl: buffer created\" size=16")
	assert.Contains(t, out, "level=WARN msg=\"trippygl: device disposed twice\"")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	d, err := newDevice(gltest.New(), Config{Logger: l})
	require.NoError(t, err)
	d.Dispose()
	assert.Contains(t, buf.String(), "trippygl: device created")
}
