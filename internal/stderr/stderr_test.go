//go:build !windows

package stderr

import (
	"bytes"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureForwardsLinesToLog(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	require.NoError(t, Capture())
	require.NoError(t, Capture(), "second Capture is a no-op")

	_, err := os.Stderr.WriteString("ALSA lib pcm.c: underrun occurred\n\n")
	require.NoError(t, err)
	Restore()
	Restore()

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"source":"stderr"`)
	assert.Contains(t, out, "underrun occurred")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "blank lines are skipped")
}
