package handlers

import (
	"time"

	"github.com/samber/lo"

	"speech2text/internal/app/model"
	"speech2text/internal/app/util/timestamp"
)

// RunSummary is one entry of the run list.
type RunSummary struct {
	ID              int64     `json:"id" example:"42"`
	RunID           string    `json:"run_id"`
	FileName        string    `json:"file_name" example:"meeting.mp4"`
	SourcePath      string    `json:"source_path"`
	Model           string    `json:"model" example:"gpt-4o-transcribe-diarize"`
	Language        string    `json:"language" example:"it"`
	DurationSeconds float64   `json:"duration_seconds" example:"2000"`
	Duration        string    `json:"duration" example:"00:33:20.000"`
	WindowCount     int       `json:"window_count" example:"3"`
	Status          string    `json:"status" enums:"ok,failed"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SegmentResponse is one stitched transcript segment.
type SegmentResponse struct {
	Start        string  `json:"start" example:"00:14:55.000"`
	End          string  `json:"end" example:"00:15:02.000"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Speaker      string  `json:"speaker,omitempty" example:"A"`
	Text         string  `json:"text"`
}

// RunDetail is a run with its transcript.
type RunDetail struct {
	RunSummary
	AudioPath string            `json:"audio_path"`
	FullText  string            `json:"full_text"`
	Segments  []SegmentResponse `json:"segments"`
}

// RunListResponse is the body of GET /runs.
type RunListResponse struct {
	Runs  []RunSummary `json:"runs"`
	Count int          `json:"count"`
}

// APIError is the body of every error response.
type APIError struct {
	Kind    string `json:"kind" example:"not_found"`
	Message string `json:"message"`
}

func newRunSummary(run model.TranscriptionRun) RunSummary {
	status := "ok"
	if run.HasError {
		status = "failed"
	}
	return RunSummary{
		ID:              run.ID,
		RunID:           run.RunID,
		FileName:        run.FileName(),
		SourcePath:      run.SourcePath,
		Model:           run.Model,
		Language:        run.Language,
		DurationSeconds: run.AudioDuration,
		Duration:        timestamp.Format(run.AudioDuration),
		WindowCount:     run.WindowCount,
		Status:          status,
		Error:           run.ErrorMessage,
		CreatedAt:       run.CreatedAt,
	}
}

func newRunDetail(run model.TranscriptionRun) RunDetail {
	return RunDetail{
		RunSummary: newRunSummary(run),
		AudioPath:  run.AudioPath,
		FullText:   run.FullText,
		Segments: lo.Map(run.Segments, func(s model.Segment, _ int) SegmentResponse {
			return SegmentResponse{
				Start:        timestamp.Format(s.StartSeconds),
				End:          timestamp.Format(s.EndSeconds),
				StartSeconds: s.StartSeconds,
				EndSeconds:   s.EndSeconds,
				Speaker:      s.Speaker,
				Text:         s.Text,
			}
		}),
	}
}
