package app

import (
	"fmt"
	"path/filepath"

	goopenai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"speech2text/internal/app/api"
	"speech2text/internal/app/api/openai"
	"speech2text/internal/app/api/openai/diarize"
	"speech2text/internal/app/audio"
	"speech2text/internal/app/chunker"
	"speech2text/internal/app/converter"
	"speech2text/internal/app/output"
	"speech2text/internal/app/repository"
	"speech2text/internal/app/repository/pg"
	"speech2text/internal/app/repository/sqlite"
	"speech2text/internal/app/retry"
	"speech2text/internal/config"
)

// provideOpenAIClient builds the client for the diarizing model, must set OPENAI_API_KEY
func provideOpenAIClient(settings *config.Settings, keys *config.APIKeys) (*goopenai.Client, error) {
	fields := map[string]string{}
	if settings.ChunkingStrategy != "" {
		fields["chunking_strategy"] = settings.ChunkingStrategy
	}
	return openai.NewClient(openai.ClientConfig{
		APIKey:     keys.OpenAI,
		BaseURL:    settings.BaseURL,
		Timeout:    settings.RequestTimeout,
		FormFields: fields,
	})
}

func provideTranscriber(client *goopenai.Client, settings *config.Settings, logger *zap.Logger) api.Transcriber {
	return diarize.NewTranscriber(client, settings.Model, settings.ResponseFormat, logger)
}

func provideCommandRunner() audio.CommandRunner {
	return audio.ExecRunner{}
}

func provideProber(settings *config.Settings, runner audio.CommandRunner) converter.Prober {
	return audio.NewFFProbe(settings.FFprobePath, runner)
}

func provideFFmpeg(settings *config.Settings, runner audio.CommandRunner, logger *zap.Logger) *audio.FFmpeg {
	return audio.NewFFmpeg(settings.FFmpegPath, runner, logger)
}

func provideChunker(settings *config.Settings, slicer chunker.Slicer, logger *zap.Logger) (*chunker.Chunker, error) {
	return chunker.New(chunker.Config{
		MaxRequestDuration: settings.MaxRequestDurationSec,
		WindowLength:       settings.WindowLengthSec,
		Overlap:            settings.WindowOverlapSec,
	}, slicer, chunker.WithWorkDir(settings.WorkDir), chunker.WithLogger(logger))
}

func provideRetryExecutor(settings *config.Settings, metrics *converter.Metrics, logger *zap.Logger) *retry.Executor {
	return retry.NewExecutor(retry.Policy{
		MaxAttempts: settings.MaxAttempts,
		Backoff:     retry.LinearBackoff(settings.RetryBackoff),
	}, logger, retry.WithObserver(metrics.ObserveRetry))
}

func provideSink(settings *config.Settings) converter.Sink {
	return output.NewWriter(settings.OutputDir)
}

// provideTranscriptionDAO opens the configured run-history store. The "none"
// driver disables history and yields a nil DAO.
func provideTranscriptionDAO(settings *config.Settings) (repository.TranscriptionDAO, error) {
	switch settings.History.Driver {
	case "none":
		return nil, nil
	case "postgres":
		db, err := pg.NewPostgresDB(settings.History.DSN)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureSchema(); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	case "sqlite", "":
		db, err := sqlite.NewSQLiteDB(sqlitePath(settings.History.DSN))
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown history driver %q", settings.History.Driver)
	}
}

// sqlitePath resolves a relative database path against the project root when
// running inside the source tree, and against the working directory otherwise.
func sqlitePath(dsn string) string {
	if dsn == ":memory:" || filepath.IsAbs(dsn) {
		return dsn
	}
	root, err := config.GetProjectRoot()
	if err != nil {
		return dsn
	}
	return filepath.Join(root, dsn)
}

func provideConverterSettings(settings *config.Settings, progress converter.ProgressConfig) converter.Settings {
	return converter.Settings{
		Model:    settings.Model,
		Language: settings.Language,
		Progress: progress,
	}
}
