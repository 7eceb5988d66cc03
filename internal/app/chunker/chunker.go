// Package chunker plans the windows a long recording is cut into and
// materialises them as separate files for the transcription service.
package chunker

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// Slicer copies a time range of src into dst.
type Slicer interface {
	Slice(ctx context.Context, src, dst string, start, length float64) error
}

// Config holds the window geometry, in seconds.
type Config struct {
	// MaxRequestDuration is the longest audio sent in a single request.
	// Sources at or below it are not split.
	MaxRequestDuration float64
	WindowLength       float64
	Overlap            float64
}

// Windows plans the windows covering [0, duration). Window i starts at
// i*(target-overlap) and lasts min(target, duration-start); the final
// window is shortened rather than dropped. Offsets are computed from the
// index so long recordings do not accumulate rounding drift.
func Windows(duration, target, overlap float64) ([]model.Window, error) {
	if err := validateGeometry(target, overlap); err != nil {
		return nil, err
	}

	step := target - overlap
	var windows []model.Window
	for i := 0; ; i++ {
		start := float64(i) * step
		if start >= duration {
			break
		}
		windows = append(windows, model.Window{
			Index:              i,
			StartOffsetSeconds: start,
			LengthSeconds:      min(target, duration-start),
		})
	}
	return windows, nil
}

func validateGeometry(target, overlap float64) error {
	switch {
	case target <= 0:
		return apperrors.InvalidField("window length", fmt.Sprintf("must be positive, got %gs", target))
	case overlap < 0:
		return apperrors.InvalidField("window overlap", fmt.Sprintf("cannot be negative, got %gs", overlap))
	case overlap >= target:
		return apperrors.InvalidField("window overlap",
			fmt.Sprintf("%gs must be shorter than the window length %gs", overlap, target))
	}
	return nil
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithWorkDir sets the directory that hosts per-run workspaces.
func WithWorkDir(dir string) Option {
	return func(c *Chunker) {
		c.workDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Chunker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Chunker splits sources longer than the request limit into window files.
type Chunker struct {
	cfg     Config
	slicer  Slicer
	workDir string
	logger  *zap.Logger
}

// New validates cfg and returns a Chunker. Invalid geometry fails here,
// before any external work is done.
func New(cfg Config, slicer Slicer, opts ...Option) (*Chunker, error) {
	if cfg.MaxRequestDuration <= 0 {
		return nil, apperrors.InvalidField("max request duration", fmt.Sprintf("must be positive, got %gs", cfg.MaxRequestDuration))
	}
	if err := validateGeometry(cfg.WindowLength, cfg.Overlap); err != nil {
		return nil, err
	}
	if slicer == nil {
		return nil, apperrors.RequiredField("slicer")
	}

	c := &Chunker{cfg: cfg, slicer: slicer, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Config returns the window geometry.
func (c *Chunker) Config() Config {
	return c.cfg
}

// Plan returns the windows Split would produce for a source of the given
// duration, without touching the filesystem. Window paths are left empty.
func (c *Chunker) Plan(duration float64) ([]model.Window, error) {
	if duration <= c.cfg.MaxRequestDuration {
		return []model.Window{{Index: 0, StartOffsetSeconds: 0, LengthSeconds: duration}}, nil
	}
	return Windows(duration, c.cfg.WindowLength, c.cfg.Overlap)
}

// Split materialises the windows of source. A source within the request
// limit yields a single window pointing at the source itself. The caller
// must Close the result to release the workspace.
func (c *Chunker) Split(ctx context.Context, source model.AudioSource) (*Split, error) {
	if source.DurationSeconds <= c.cfg.MaxRequestDuration {
		c.logger.Debug("source within request limit, not splitting",
			zap.String("path", source.Path),
			zap.Float64("duration", source.DurationSeconds))
		return &Split{Windows: []model.Window{{
			Index:              0,
			Path:               source.Path,
			StartOffsetSeconds: 0,
			LengthSeconds:      source.DurationSeconds,
		}}}, nil
	}

	windows, err := Windows(source.DurationSeconds, c.cfg.WindowLength, c.cfg.Overlap)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, apperrors.Mark(apperrors.ErrSplitFailed, apperrors.ErrEmptySplit, "")
	}

	ws, err := newWorkspace(c.workDir)
	if err != nil {
		return nil, apperrors.Mark(apperrors.ErrSplitFailed, err, "create workspace")
	}

	c.logger.Info("splitting source",
		zap.String("path", source.Path),
		zap.Float64("duration", source.DurationSeconds),
		zap.Int("windows", len(windows)),
		zap.String("workspace", ws.Dir()))

	ext := filepath.Ext(source.Path)
	base := strings.TrimSuffix(filepath.Base(source.Path), ext)

	for i := range windows {
		if err := ctx.Err(); err != nil {
			c.discard(ws)
			return nil, apperrors.Mark(apperrors.ErrSplitFailed, err, "")
		}

		dst := ws.Path(fmt.Sprintf("%s_part_%03d%s", base, windows[i].Index, ext))
		if err := c.slicer.Slice(ctx, source.Path, dst, windows[i].StartOffsetSeconds, windows[i].LengthSeconds); err != nil {
			c.discard(ws)
			return nil, apperrors.Mark(apperrors.ErrSplitFailed, err, "%s", windows[i])
		}
		windows[i].Path = dst
	}

	return &Split{Windows: windows, workspace: ws}, nil
}

// discard removes the workspace of a failed split. The split error is what
// the caller sees, so a removal failure is only logged.
func (c *Chunker) discard(ws *workspace) {
	if err := ws.Remove(); err != nil {
		c.logger.Warn("failed to remove window files", zap.String("dir", ws.Dir()), zap.Error(err))
	}
}
