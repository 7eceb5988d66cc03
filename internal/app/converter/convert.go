package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"speech2text/internal/app/api"
	"speech2text/internal/app/audio"
	"speech2text/internal/app/chunker"
	"speech2text/internal/app/logging"
	"speech2text/internal/app/model"
	"speech2text/internal/app/output"
	"speech2text/internal/app/repository"
	"speech2text/internal/app/retry"
	"speech2text/internal/app/stitcher"
)

// Prober reports the duration of a media file in seconds.
type Prober interface {
	Probe(ctx context.Context, path string) (float64, error)
}

// Extractor turns a video file into an audio file and returns its path.
type Extractor interface {
	ExtractAudio(ctx context.Context, videoPath string) (string, error)
}

// Sink receives the finished transcript and returns where it was written.
type Sink interface {
	Write(rec output.Record) (string, error)
}

// Settings are the per-run values the converter passes through.
type Settings struct {
	Model    string
	Language string
	Progress ProgressConfig
}

// Result describes one completed run.
type Result struct {
	RunID      string
	SourcePath string
	AudioPath  string
	Duration   float64
	Windows    []model.Window
	Transcript model.Transcript
	OutputPath string
	// RecordID is the history row id, 0 when history is disabled or recording failed.
	RecordID int64
}

type Converter struct {
	transcriber api.Transcriber
	db          repository.TranscriptionDAO
	prober      Prober
	extractor   Extractor
	chunker     *chunker.Chunker
	retry       *retry.Executor
	sink        Sink
	metrics     *Metrics
	settings    Settings
	logger      *zap.Logger
	now         func() time.Time
}

// NewConverter wires the run collaborators. db and metrics may be nil.
func NewConverter(
	transcriber api.Transcriber,
	transcriptionDAO repository.TranscriptionDAO,
	prober Prober,
	extractor Extractor,
	chunk *chunker.Chunker,
	executor *retry.Executor,
	sink Sink,
	metrics *Metrics,
	settings Settings,
	logger *zap.Logger,
) *Converter {
	return &Converter{
		transcriber: transcriber,
		db:          transcriptionDAO,
		prober:      prober,
		extractor:   extractor,
		chunker:     chunk,
		retry:       executor,
		sink:        sink,
		metrics:     metrics,
		settings:    settings,
		logger:      logging.OrNop(logger),
		now:         time.Now,
	}
}

func (c *Converter) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Metrics returns the run metrics, possibly nil.
func (c *Converter) Metrics() *Metrics {
	return c.metrics
}

// History returns the run-history store, nil when history is disabled.
func (c *Converter) History() repository.TranscriptionDAO {
	return c.db
}

// PreviouslyTranscribed returns the id of the latest successful run for the
// source's base name, or 0.
func (c *Converter) PreviouslyTranscribed(sourcePath string) (int64, error) {
	if c.db == nil {
		return 0, nil
	}
	run := model.TranscriptionRun{SourcePath: sourcePath}
	return c.db.CheckIfFileProcessed(run.FileName())
}

// Convert transcribes sourcePath end to end: audio extraction for video,
// duration probe, splitting, per-window transcription with retry, stitching
// and output. Every run is recorded in the history store, failed ones included.
func (c *Converter) Convert(ctx context.Context, sourcePath string) (*Result, error) {
	res := &Result{
		RunID:      uuid.NewString(),
		SourcePath: sourcePath,
		AudioPath:  sourcePath,
	}
	logger := c.logger.With(zap.String("run_id", res.RunID), zap.String("source", filepath.Base(sourcePath)))

	err := c.convert(ctx, res, logger)
	c.metrics.ObserveRun(err)
	res.RecordID = c.record(res, err, logger)
	if err != nil {
		logger.Error("transcription run failed", zap.Error(err))
		return nil, err
	}

	logger.Info("transcription run completed",
		zap.Int("windows", len(res.Windows)),
		zap.Int("segments", len(res.Transcript.Segments)),
		zap.String("output", res.OutputPath))
	return res, nil
}

func (c *Converter) convert(ctx context.Context, res *Result, logger *zap.Logger) error {
	if audio.IsVideo(res.SourcePath) {
		audioPath, err := c.extractor.ExtractAudio(ctx, res.SourcePath)
		if err != nil {
			return err
		}
		res.AudioPath = audioPath
	}

	duration, err := c.prober.Probe(ctx, res.AudioPath)
	if err != nil {
		return err
	}
	res.Duration = duration
	logger.Info("probed source", zap.Float64("duration_seconds", duration))

	split, err := c.chunker.Split(ctx, model.AudioSource{Path: res.AudioPath, DurationSeconds: duration})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := split.Close(); cerr != nil {
			logger.Warn("failed to remove window files", zap.String("dir", split.Workspace()), zap.Error(cerr))
		}
	}()
	res.Windows = split.Windows

	progress := newWindowProgress(c.settings.Progress, len(split.Windows), filepath.Base(res.SourcePath))
	defer progress.wait()

	acc := stitcher.New()
	for _, window := range split.Windows {
		result, err := c.retry.Execute(ctx, window, c.transcribeWindow)
		if err != nil {
			progress.abort()
			return fmt.Errorf("%s: %w", window, err)
		}
		acc.Accumulate(window, result)
		c.metrics.ObserveWindow()
		progress.windowDone()
	}
	c.metrics.ObserveAudio(duration)
	res.Transcript = acc.Finalize()

	res.OutputPath, err = c.sink.Write(output.Record{
		SourcePath:    res.SourcePath,
		ProcessedPath: res.AudioPath,
		Model:         c.settings.Model,
		Transcript:    res.Transcript,
		Time:          c.now(),
	})
	return err
}

func (c *Converter) transcribeWindow(ctx context.Context, window model.Window) (model.TranscriptionResult, error) {
	start := time.Now()
	result, err := c.transcriber.Transcribe(ctx, window.Path, c.settings.Language)
	c.metrics.ObserveRequest(time.Since(start), err)
	return result, err
}

// record stores the run outcome. History failures are logged, not returned.
func (c *Converter) record(res *Result, runErr error, logger *zap.Logger) int64 {
	if c.db == nil {
		return 0
	}

	run := &model.TranscriptionRun{
		RunID:         res.RunID,
		SourcePath:    res.SourcePath,
		AudioPath:     res.AudioPath,
		Model:         c.settings.Model,
		Language:      c.settings.Language,
		AudioDuration: res.Duration,
		WindowCount:   len(res.Windows),
		FullText:      res.Transcript.FullText,
		Segments:      res.Transcript.Segments,
		CreatedAt:     c.now(),
	}
	if runErr != nil {
		run.HasError = true
		run.ErrorMessage = runErr.Error()
	}

	id, err := c.db.RecordToDB(run)
	if err != nil {
		logger.Warn("failed to record run history", zap.Error(err))
		return 0
	}
	return id
}
