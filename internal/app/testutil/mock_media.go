package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/stretchr/testify/mock"
)

// MockProber is a testify mock for duration probing.
//
//	prober := new(testutil.MockProber)
//	prober.On("Probe", mock.Anything, "talk.mp3").Return(2000.0, nil)
type MockProber struct {
	mock.Mock
}

func (m *MockProber) Probe(ctx context.Context, path string) (float64, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(float64), args.Error(1)
}

// MockExtractor is a testify mock for video to audio extraction.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	args := m.Called(ctx, videoPath)
	return args.String(0), args.Error(1)
}

// SliceCall records one FakeSlicer invocation.
type SliceCall struct {
	Src    string
	Dst    string
	Start  float64
	Length float64
}

// FakeSlicer writes an empty file for every requested window instead of running ffmpeg.
type FakeSlicer struct {
	mu    sync.Mutex
	Calls []SliceCall
	// FailAt makes the call with this zero-based index fail; negative disables it.
	FailAt int
	Err    error
}

func NewFakeSlicer() *FakeSlicer {
	return &FakeSlicer{FailAt: -1}
}

func (f *FakeSlicer) Slice(ctx context.Context, src, dst string, start, length float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	index := len(f.Calls)
	f.Calls = append(f.Calls, SliceCall{Src: src, Dst: dst, Start: start, Length: length})
	if err := ctx.Err(); err != nil {
		return err
	}
	if index == f.FailAt {
		if f.Err != nil {
			return f.Err
		}
		return fmt.Errorf("exit status 1")
	}
	return os.WriteFile(dst, []byte(fmt.Sprintf("%.3f+%.3f", start, length)), 0o644)
}

// Destinations returns the output paths requested so far.
func (f *FakeSlicer) Destinations() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	dst := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		dst[i] = c.Dst
	}
	return dst
}
