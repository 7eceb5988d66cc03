package api

import (
	"context"

	"speech2text/internal/app/model"
)

// Transcriber sends one audio file to a speech-to-text service. language may be
// empty to let the service detect it.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) (model.TranscriptionResult, error)
}
