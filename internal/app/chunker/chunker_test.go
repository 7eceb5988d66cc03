package chunker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

type sliceCall struct {
	src, dst      string
	start, length float64
}

type fakeSlicer struct {
	calls  []sliceCall
	failAt int // 1-based call number that fails, 0 never
}

func (f *fakeSlicer) Slice(_ context.Context, src, dst string, start, length float64) error {
	f.calls = append(f.calls, sliceCall{src: src, dst: dst, start: start, length: length})
	if f.failAt == len(f.calls) {
		return fmt.Errorf("exit status 1")
	}
	return os.WriteFile(dst, []byte("audio"), 0o644)
}

func TestWindows(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		target   float64
		overlap  float64
		starts   []float64
		lengths  []float64
	}{
		{
			name:     "long recording with overlap",
			duration: 2000, target: 900, overlap: 5,
			starts:  []float64{0, 895, 1790},
			lengths: []float64{900, 900, 210},
		},
		{
			name:     "exact multiple without overlap",
			duration: 1800, target: 900, overlap: 0,
			starts:  []float64{0, 900},
			lengths: []float64{900, 900},
		},
		{
			name:     "shorter than one window",
			duration: 100, target: 900, overlap: 5,
			starts:  []float64{0},
			lengths: []float64{100},
		},
		{
			name:     "tiny tail is kept",
			duration: 895.5, target: 900, overlap: 5,
			starts:  []float64{0, 895},
			lengths: []float64{895.5, 0.5},
		},
		{
			name:     "zero duration",
			duration: 0, target: 900, overlap: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows, err := Windows(tt.duration, tt.target, tt.overlap)
			require.NoError(t, err)
			require.Len(t, windows, len(tt.starts))

			for i, w := range windows {
				assert.Equal(t, i, w.Index)
				assert.InDelta(t, tt.starts[i], w.StartOffsetSeconds, 1e-9)
				assert.InDelta(t, tt.lengths[i], w.LengthSeconds, 1e-9)
			}
		})
	}
}

func TestWindowsCoverage(t *testing.T) {
	durations := []float64{1, 899.999, 900, 1400.5, 2000, 7261.25, 36000}

	for _, duration := range durations {
		t.Run(fmt.Sprintf("%g", duration), func(t *testing.T) {
			windows, err := Windows(duration, 900, 5)
			require.NoError(t, err)
			require.NotEmpty(t, windows)

			assert.Equal(t, 0.0, windows[0].StartOffsetSeconds)
			for i, w := range windows {
				assert.Greater(t, w.LengthSeconds, 0.0)
				assert.LessOrEqual(t, w.LengthSeconds, 900.0)
				if i > 0 {
					prev := windows[i-1]
					assert.Greater(t, w.StartOffsetSeconds, prev.StartOffsetSeconds)
					assert.LessOrEqual(t, w.StartOffsetSeconds, prev.EndSeconds(), "no gap between windows")
				}
			}
			assert.InDelta(t, duration, windows[len(windows)-1].EndSeconds(), 1e-6)
		})
	}
}

func TestWindowsRejectsInvalidGeometry(t *testing.T) {
	tests := []struct {
		name            string
		target, overlap float64
	}{
		{"overlap equals target", 900, 900},
		{"overlap exceeds target", 900, 1000},
		{"negative overlap", 900, -1},
		{"zero target", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Windows(2000, tt.target, tt.overlap)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	slicer := &fakeSlicer{}

	_, err := New(Config{MaxRequestDuration: 1400, WindowLength: 900, Overlap: 900}, slicer)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))

	_, err = New(Config{MaxRequestDuration: 0, WindowLength: 900, Overlap: 5}, slicer)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))

	_, err = New(Config{MaxRequestDuration: 1400, WindowLength: 900, Overlap: 5}, nil)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))

	assert.Empty(t, slicer.calls)
}

func newTestChunker(t *testing.T, slicer Slicer, workDir string) *Chunker {
	t.Helper()
	c, err := New(Config{MaxRequestDuration: 1400, WindowLength: 900, Overlap: 5}, slicer, WithWorkDir(workDir))
	require.NoError(t, err)
	return c
}

func TestSplitBypassesShortSource(t *testing.T) {
	slicer := &fakeSlicer{}
	workDir := t.TempDir()
	c := newTestChunker(t, slicer, workDir)

	split, err := c.Split(context.Background(), model.AudioSource{Path: "talk.mp3", DurationSeconds: 1400})
	require.NoError(t, err)
	defer split.Close()

	assert.Equal(t, []model.Window{{Index: 0, Path: "talk.mp3", StartOffsetSeconds: 0, LengthSeconds: 1400}}, split.Windows)
	assert.Empty(t, slicer.calls, "slicer must not be invoked")
	assert.Empty(t, split.Workspace())

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no workspace is created")
}

func TestSplitMaterialisesWindows(t *testing.T) {
	slicer := &fakeSlicer{}
	c := newTestChunker(t, slicer, t.TempDir())

	split, err := c.Split(context.Background(), model.AudioSource{Path: "/rec/riunione.mp3", DurationSeconds: 2000})
	require.NoError(t, err)

	require.Len(t, split.Windows, 3)
	require.Len(t, slicer.calls, 3)

	ws := split.Workspace()
	assert.Contains(t, filepath.Base(ws), "segments_")
	for i, w := range split.Windows {
		assert.Equal(t, filepath.Join(ws, fmt.Sprintf("riunione_part_%03d.mp3", i)), w.Path)
		assert.FileExists(t, w.Path)
		assert.Equal(t, sliceCall{src: "/rec/riunione.mp3", dst: w.Path, start: w.StartOffsetSeconds, length: w.LengthSeconds}, slicer.calls[i])
	}
	assert.Equal(t, []float64{0, 895, 1790}, []float64{
		split.Windows[0].StartOffsetSeconds,
		split.Windows[1].StartOffsetSeconds,
		split.Windows[2].StartOffsetSeconds,
	})

	require.NoError(t, split.Close())
	assert.NoDirExists(t, ws)
	assert.NoError(t, split.Close(), "second close is a no-op")
}

func TestSplitFailureRemovesWorkspace(t *testing.T) {
	slicer := &fakeSlicer{failAt: 2}
	workDir := t.TempDir()
	c := newTestChunker(t, slicer, workDir)

	split, err := c.Split(context.Background(), model.AudioSource{Path: "talk.mp3", DurationSeconds: 2000})
	require.Error(t, err)
	assert.Nil(t, split)
	assert.True(t, errors.Is(err, apperrors.ErrSplitFailed))
	assert.Contains(t, err.Error(), "window 1")

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "workspace is removed after a failed slice")
}

func TestSplitFailureLogsRemovalError(t *testing.T) {
	removeErr := errors.New("device busy")
	orig := removeAll
	removeAll = func(string) error { return removeErr }
	defer func() { removeAll = orig }()

	core, logs := observer.New(zapcore.WarnLevel)
	c, err := New(Config{MaxRequestDuration: 1400, WindowLength: 900, Overlap: 5}, &fakeSlicer{failAt: 1},
		WithWorkDir(t.TempDir()), WithLogger(zap.New(core)))
	require.NoError(t, err)

	_, err = c.Split(context.Background(), model.AudioSource{Path: "talk.mp3", DurationSeconds: 2000})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrSplitFailed))
	assert.False(t, errors.Is(err, removeErr), "the slice error is returned, not the cleanup error")

	warned := logs.FilterMessage("failed to remove window files").All()
	require.Len(t, warned, 1)
	assert.Equal(t, "device busy", warned[0].ContextMap()["error"])
}

func TestSplitCancelled(t *testing.T) {
	slicer := &fakeSlicer{}
	workDir := t.TempDir()
	c := newTestChunker(t, slicer, workDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Split(ctx, model.AudioSource{Path: "talk.mp3", DurationSeconds: 2000})
	assert.True(t, errors.Is(err, apperrors.ErrSplitFailed))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, slicer.calls)

	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPlan(t *testing.T) {
	c := newTestChunker(t, &fakeSlicer{}, "")

	short, err := c.Plan(600)
	require.NoError(t, err)
	assert.Equal(t, []model.Window{{Index: 0, LengthSeconds: 600}}, short)

	long, err := c.Plan(2000)
	require.NoError(t, err)
	assert.Len(t, long, 3)
	assert.Empty(t, long[1].Path)
}

func TestSplitNilSafeClose(t *testing.T) {
	var s *Split
	assert.NoError(t, s.Close())
	assert.Empty(t, s.Workspace())
}
