package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// AudioSource is a probed recording. DurationSeconds is always > 0.
type AudioSource struct {
	Path            string
	DurationSeconds float64
}

// Window is a bounded time slice of the original recording submitted as one
// transcription request. StartOffsetSeconds is measured on the original timeline.
type Window struct {
	Index              int
	Path               string
	StartOffsetSeconds float64
	LengthSeconds      float64
}

// EndSeconds returns the window end on the original timeline.
func (w Window) EndSeconds() float64 {
	return w.StartOffsetSeconds + w.LengthSeconds
}

// String returns a human-readable representation for logging.
func (w Window) String() string {
	return fmt.Sprintf("window %d: %.3fs-%.3fs", w.Index, w.StartOffsetSeconds, w.EndSeconds())
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
