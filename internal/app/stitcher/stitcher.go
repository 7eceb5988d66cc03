// Package stitcher merges window-local transcription results into one
// transcript on the original recording's timeline.
package stitcher

import (
	"strings"

	"github.com/samber/lo"

	"speech2text/internal/app/model"
)

// Stitcher accumulates window results in processing order. Segments from
// overlapping windows are kept as they are, so speech inside an overlap may
// appear twice.
type Stitcher struct {
	segments  []model.Segment
	textParts []string
	windows   int
}

func New() *Stitcher {
	return &Stitcher{}
}

// Accumulate adds the result of window. Windows must be passed in increasing
// offset order.
func (s *Stitcher) Accumulate(window model.Window, result model.TranscriptionResult) {
	s.windows++

	switch r := result.(type) {
	case model.Diarized:
		for _, seg := range r.Segments {
			s.segments = append(s.segments, seg.Shift(window.StartOffsetSeconds))
		}
		s.textParts = append(s.textParts, strings.TrimSpace(r.Text))
	case model.PlainText:
		s.textParts = append(s.textParts, strings.TrimSpace(r.Text))
	}
}

// Windows returns how many window results were accumulated.
func (s *Stitcher) Windows() int {
	return s.windows
}

// Finalize returns the transcript. The full text joins the non-empty window
// texts with newlines.
func (s *Stitcher) Finalize() model.Transcript {
	parts := lo.Filter(s.textParts, func(part string, _ int) bool {
		return part != ""
	})
	return model.Transcript{
		Segments: append([]model.Segment(nil), s.segments...),
		FullText: strings.Join(parts, "\n"),
	}
}
