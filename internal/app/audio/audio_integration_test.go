//go:build integration
// +build integration

package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These are integration tests that can be run when FFmpeg is available
// Run with: go test -tags=integration ./internal/app/audio/

func isFFmpegAvailable() bool {
	_, errFFmpeg := exec.LookPath("ffmpeg")
	_, errFFprobe := exec.LookPath("ffprobe")
	return errFFmpeg == nil && errFFprobe == nil
}

// generateTone writes a sine tone of the given length to dir and returns its path.
func generateTone(t *testing.T, dir string, seconds string) string {
	t.Helper()
	path := filepath.Join(dir, "tone.mp3")
	cmd := exec.Command("ffmpeg", "-hide_banner", "-loglevel", "error", "-y",
		"-f", "lavfi", "-i", "sine=frequency=440:duration="+seconds,
		"-q:a", "9", path)
	require.NoError(t, cmd.Run())
	return path
}

func TestProbeAndSliceIntegration(t *testing.T) {
	if !isFFmpegAvailable() {
		t.Skip("FFmpeg not available, skipping integration tests")
	}

	ctx := context.Background()
	dir := t.TempDir()
	tone := generateTone(t, dir, "12")

	duration, err := NewFFProbe("ffprobe", nil).Probe(ctx, tone)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, duration, 0.5)

	part := filepath.Join(dir, "tone_part_001.mp3")
	require.NoError(t, NewFFmpeg("ffmpeg", nil, nil).Slice(ctx, tone, part, 5, 5))

	info, err := os.Stat(part)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	partDuration, err := NewFFProbe("ffprobe", nil).Probe(ctx, part)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, partDuration, 0.5)
}

func TestProbeMissingFileIntegration(t *testing.T) {
	if !isFFmpegAvailable() {
		t.Skip("FFmpeg not available, skipping integration tests")
	}

	_, err := NewFFProbe("ffprobe", nil).Probe(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"))
	assert.Error(t, err)
}
