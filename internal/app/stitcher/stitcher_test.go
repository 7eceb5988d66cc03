package stitcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"speech2text/internal/app/model"
)

func TestStitchShiftsSegmentsByWindowOffset(t *testing.T) {
	s := New()

	s.Accumulate(model.Window{Index: 0, StartOffsetSeconds: 0, LengthSeconds: 900}, model.Diarized{
		Text:     "Ciao. ",
		Segments: []model.Segment{{StartSeconds: 1, EndSeconds: 2, Speaker: "A", Text: " Ciao. "}},
	})
	s.Accumulate(model.Window{Index: 1, StartOffsetSeconds: 895, LengthSeconds: 900}, model.Diarized{
		Text:     "Buongiorno.",
		Segments: []model.Segment{{StartSeconds: 0.5, EndSeconds: 3, Speaker: "B", Text: "Buongiorno."}},
	})

	transcript := s.Finalize()

	assert.Equal(t, []model.Segment{
		{StartSeconds: 1, EndSeconds: 2, Speaker: "A", Text: "Ciao."},
		{StartSeconds: 895.5, EndSeconds: 898, Speaker: "B", Text: "Buongiorno."},
	}, transcript.Segments)
	assert.Equal(t, "Ciao.\nBuongiorno.", transcript.FullText)
	assert.Equal(t, 2, s.Windows())
}

func TestStitchKeepsOverlapDuplicates(t *testing.T) {
	s := New()

	s.Accumulate(model.Window{Index: 0, StartOffsetSeconds: 0}, model.Diarized{
		Segments: []model.Segment{{StartSeconds: 897, EndSeconds: 899, Speaker: "A", Text: "fine"}},
	})
	s.Accumulate(model.Window{Index: 1, StartOffsetSeconds: 895}, model.Diarized{
		Segments: []model.Segment{{StartSeconds: 2, EndSeconds: 4, Speaker: "A", Text: "fine"}},
	})

	transcript := s.Finalize()
	require.Len(t, transcript.Segments, 2)
	assert.Equal(t, 897.0, transcript.Segments[0].StartSeconds)
	assert.Equal(t, 897.0, transcript.Segments[1].StartSeconds)
}

func TestStitchPlainTextContributesOnlyText(t *testing.T) {
	s := New()

	s.Accumulate(model.Window{Index: 0, StartOffsetSeconds: 0}, model.Diarized{
		Text:     "prima parte",
		Segments: []model.Segment{{StartSeconds: 0, EndSeconds: 5, Speaker: "A", Text: "prima parte"}},
	})
	s.Accumulate(model.Window{Index: 1, StartOffsetSeconds: 895}, model.PlainText{Text: "  seconda parte  "})

	transcript := s.Finalize()

	assert.Len(t, transcript.Segments, 1)
	assert.Equal(t, "prima parte\nseconda parte", transcript.FullText)
}

func TestStitchSkipsEmptyWindowText(t *testing.T) {
	s := New()

	s.Accumulate(model.Window{Index: 0}, model.PlainText{Text: "uno"})
	s.Accumulate(model.Window{Index: 1, StartOffsetSeconds: 895}, model.PlainText{Text: "   "})
	s.Accumulate(model.Window{Index: 2, StartOffsetSeconds: 1790}, model.Diarized{Text: "tre"})

	assert.Equal(t, "uno\ntre", s.Finalize().FullText)
}

func TestStitchEmpty(t *testing.T) {
	transcript := New().Finalize()

	assert.Empty(t, transcript.Segments)
	assert.Equal(t, "", transcript.FullText)
	assert.False(t, transcript.HasSegments())
}
