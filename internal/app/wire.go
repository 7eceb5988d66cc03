//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"speech2text/internal/app/audio"
	"speech2text/internal/app/chunker"
	"speech2text/internal/app/converter"
	"speech2text/internal/app/repository"
	"speech2text/internal/config"
)

var mediaSet = wire.NewSet(
	provideCommandRunner,
	provideProber,
	provideFFmpeg,
	provideChunker,
	wire.Bind(new(chunker.Slicer), new(*audio.FFmpeg)),
)

func InitializeConverter(settings *config.Settings, keys *config.APIKeys, progress converter.ProgressConfig, logger *zap.Logger) (*converter.Converter, error) {
	wire.Build(
		converter.NewConverter,
		provideOpenAIClient,
		provideTranscriber,
		provideTranscriptionDAO,
		mediaSet,
		wire.Bind(new(converter.Extractor), new(*audio.FFmpeg)),
		converter.NewMetrics,
		provideRetryExecutor,
		provideSink,
		provideConverterSettings,
	)
	return &converter.Converter{}, nil
}

// InitializePlanner needs no API key: planning only probes the source.
func InitializePlanner(settings *config.Settings, logger *zap.Logger) (*converter.Planner, error) {
	wire.Build(converter.NewPlanner, mediaSet)
	return &converter.Planner{}, nil
}

func InitializeTranscriptionDAO(settings *config.Settings) (repository.TranscriptionDAO, error) {
	wire.Build(provideTranscriptionDAO)
	return nil, nil
}
