package converter

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledProgressIsNoop(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProgressConfig
		windows int
	}{
		{"disabled", ProgressConfig{Enabled: false}, 3},
		{"no windows", ProgressConfig{Enabled: true, Writer: &bytes.Buffer{}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newWindowProgress(tt.cfg, tt.windows, "talk.mp3")
			assert.Nil(t, p)
			assert.NotPanics(t, func() {
				p.windowDone()
				p.abort()
				p.wait()
			})
		})
	}
}

func TestWindowProgressCompletes(t *testing.T) {
	var buf bytes.Buffer
	p := newWindowProgress(ProgressConfig{Enabled: true, Writer: &buf}, 2, "talk.mp3")
	require.NotNil(t, p)

	p.windowDone()
	p.windowDone()
	p.wait()

	assert.Contains(t, buf.String(), "talk.mp3")
	assert.Contains(t, buf.String(), "window 2/2")
}

func TestWindowProgressAbort(t *testing.T) {
	var buf bytes.Buffer
	p := newWindowProgress(ProgressConfig{Enabled: true, Writer: &buf}, 3, "talk.mp3")
	require.NotNil(t, p)

	p.windowDone()
	p.abort()
	p.wait()

	assert.Contains(t, buf.String(), "window 1/3")
}

func TestIsTTY(t *testing.T) {
	assert.False(t, IsTTY(nil))
	assert.False(t, IsTTY(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, IsTTY(f))
	assert.True(t, ShouldShowProgress(true))
}
