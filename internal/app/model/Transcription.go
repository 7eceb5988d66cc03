package model

import "time"

// TranscriptionRun is one persisted pipeline run, successful or not.
type TranscriptionRun struct {
	ID            int64
	RunID         string
	SourcePath    string
	AudioPath     string
	Model         string
	Language      string
	AudioDuration float64
	WindowCount   int
	FullText      string
	Segments      []Segment
	HasError      bool
	ErrorMessage  string
	CreatedAt     time.Time
}

// FileName returns the base name of the source recording.
func (r TranscriptionRun) FileName() string {
	return baseName(r.SourcePath)
}
