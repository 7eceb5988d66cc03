// Package output appends transcripts to per-source text files.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"speech2text/internal/app/model"
	"speech2text/internal/app/util/files"
	"speech2text/internal/app/util/timestamp"
)

const separator = "#########"

// Record is everything written for one run.
type Record struct {
	SourcePath    string
	ProcessedPath string
	Model         string
	Transcript    model.Transcript
	Time          time.Time
}

// Writer appends records to <dir>/<source base name>.txt.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// PathFor returns the output file used for sourcePath.
func (w *Writer) PathFor(sourcePath string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(w.dir, base+".txt")
}

// Write appends rec to its output file, creating the directory and file as
// needed, and returns the file path. Earlier runs are never overwritten.
func (w *Writer) Write(rec Record) (string, error) {
	if err := files.EnsureDir(w.dir); err != nil {
		return "", err
	}

	path := w.PathFor(rec.SourcePath)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if err := Format(f, rec); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}
	return path, nil
}

// Format writes the text block of rec.
func Format(out io.Writer, rec Record) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n%s\n", separator, rec.Time.Format("2006-01-02 15:04:05.000000"))
	fmt.Fprintf(&b, "Source file: %s\n", rec.SourcePath)
	if rec.ProcessedPath != "" && rec.ProcessedPath != rec.SourcePath {
		fmt.Fprintf(&b, "Processed file: %s\n", rec.ProcessedPath)
	}
	fmt.Fprintf(&b, "Model: %s\n\n", rec.Model)

	if rec.Transcript.HasSegments() {
		b.WriteString("Segments:\n")
		for _, line := range SegmentLines(rec.Transcript.Segments) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString("Full transcript:\n")
	b.WriteString(rec.Transcript.FullText)
	b.WriteString("\n\n")

	_, err := io.WriteString(out, b.String())
	return err
}

// SegmentLines renders segments as "[start - end] speaker: text".
func SegmentLines(segments []model.Segment) []string {
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, fmt.Sprintf("[%s - %s] %s: %s",
			timestamp.Format(s.StartSeconds), timestamp.Format(s.EndSeconds), s.Speaker, s.Text))
	}
	return lines
}
