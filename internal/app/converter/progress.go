package converter

import (
	"io"
	"os"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressConfig controls the per-run window progress bar.
type ProgressConfig struct {
	Enabled bool
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

// windowProgress renders a single bar counting transcribed windows.
// A nil *windowProgress is a disabled bar.
type windowProgress struct {
	container *mpb.Progress
	bar       *mpb.Bar
}

func newWindowProgress(cfg ProgressConfig, windows int, label string) *windowProgress {
	if !cfg.Enabled || windows <= 0 {
		return nil
	}
	out := cfg.Writer
	if out == nil {
		out = os.Stderr
	}

	// Without auto refresh mpb draws nothing when out is not a terminal.
	container := mpb.New(
		mpb.WithOutput(out),
		mpb.WithRefreshRate(150*time.Millisecond),
		mpb.WithAutoRefresh(),
	)
	bar := container.AddBar(int64(windows),
		mpb.PrependDecorators(
			decor.Name(label, decor.WCSyncSpaceR),
			decor.CountersNoUnit("window %d/%d", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.OnAbort(
				decor.OnComplete(decor.Percentage(decor.WCSyncSpace), " done"),
				" failed",
			),
			decor.Elapsed(decor.ET_STYLE_MMSS, decor.WCSyncSpace),
		),
	)
	return &windowProgress{container: container, bar: bar}
}

func (p *windowProgress) windowDone() {
	if p != nil {
		p.bar.Increment()
	}
}

// abort leaves the bar on screen, marked as failed.
func (p *windowProgress) abort() {
	if p != nil {
		p.bar.Abort(false)
	}
}

// wait blocks until the bar has been rendered for the last time.
func (p *windowProgress) wait() {
	if p != nil {
		p.container.Wait()
	}
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// ShouldShowProgress enables the bar when forced or when stderr is a terminal.
func ShouldShowProgress(forced bool) bool {
	return forced || IsTTY(os.Stderr)
}
