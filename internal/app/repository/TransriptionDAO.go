package repository

import "speech2text/internal/app/model"

// TranscriptionDAO stores the history of transcription runs.
type TranscriptionDAO interface {
	Close() error

	// CheckIfFileProcessed returns the id of the latest successful run for
	// fileName (the source base name), or 0 when there is none.
	CheckIfFileProcessed(fileName string) (int64, error)

	// RecordToDB stores run and its segments and returns the new id.
	RecordToDB(run *model.TranscriptionRun) (int64, error)

	// ListRuns returns the most recent runs first, without segments.
	ListRuns(limit int) ([]model.TranscriptionRun, error)

	// GetRun returns one run with its segments.
	GetRun(id int64) (*model.TranscriptionRun, error)
}
