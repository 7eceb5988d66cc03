package model

import "strings"

// Segment is a speaker-attributed piece of transcript. Times are window-local until
// the stitcher shifts them onto the original timeline.
type Segment struct {
	StartSeconds float64
	EndSeconds   float64
	Speaker      string
	Text         string
}

// Shift returns a copy of s moved by offset seconds with its text trimmed.
func (s Segment) Shift(offset float64) Segment {
	return Segment{
		StartSeconds: s.StartSeconds + offset,
		EndSeconds:   s.EndSeconds + offset,
		Speaker:      s.Speaker,
		Text:         strings.TrimSpace(s.Text),
	}
}

// TranscriptionResult is what the transcription service returned for one window.
// It is either Diarized or PlainText.
type TranscriptionResult interface {
	FullText() string
	isTranscriptionResult()
}

// Diarized carries timed, speaker-labelled segments plus the window's full text.
type Diarized struct {
	Segments []Segment
	Text     string
}

func (d Diarized) FullText() string     { return d.Text }
func (Diarized) isTranscriptionResult() {}

// PlainText is the fallback when the service returned no segments.
type PlainText struct {
	Text string
}

func (p PlainText) FullText() string     { return p.Text }
func (PlainText) isTranscriptionResult() {}

// Transcript is the stitched result of a whole recording.
type Transcript struct {
	Segments []Segment
	FullText string
}

// HasSegments reports whether any window produced diarized output.
func (t Transcript) HasSegments() bool {
	return len(t.Segments) > 0
}
