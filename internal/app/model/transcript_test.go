package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentShift(t *testing.T) {
	s := Segment{StartSeconds: 1.5, EndSeconds: 4, Speaker: "A", Text: "  ciao a tutti \n"}

	shifted := s.Shift(895)

	assert.Equal(t, Segment{StartSeconds: 896.5, EndSeconds: 899, Speaker: "A", Text: "ciao a tutti"}, shifted)
	assert.Equal(t, 1.5, s.StartSeconds, "shift must not mutate the receiver")
}

func TestTranscriptionResultVariants(t *testing.T) {
	results := []TranscriptionResult{
		Diarized{Text: "diarized"},
		PlainText{Text: "plain"},
	}

	var kinds []string
	for _, r := range results {
		switch r.(type) {
		case Diarized:
			kinds = append(kinds, "diarized")
		case PlainText:
			kinds = append(kinds, "plain")
		}
	}

	assert.Equal(t, []string{"diarized", "plain"}, kinds)
	assert.Equal(t, "plain", results[1].FullText())
}

func TestWindowBounds(t *testing.T) {
	w := Window{Index: 2, StartOffsetSeconds: 1790, LengthSeconds: 210}

	assert.Equal(t, 2000.0, w.EndSeconds())
	assert.Equal(t, "window 2: 1790.000s-2000.000s", w.String())
}

func TestTranscriptionRunFileName(t *testing.T) {
	run := TranscriptionRun{SourcePath: "sources/riunione.mp4"}
	assert.Equal(t, "riunione", run.FileName())
}
