package audio

import (
	"context"
	stderrors "errors"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	apperrors "speech2text/internal/app/errors"
)

// FFProbe measures media duration with ffprobe.
type FFProbe struct {
	binary string
	runner CommandRunner
}

func NewFFProbe(binary string, runner CommandRunner) *FFProbe {
	if binary == "" {
		binary = "ffprobe"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &FFProbe{binary: binary, runner: runner}
}

// Probe returns the duration of the file at path in seconds.
func (p *FFProbe) Probe(ctx context.Context, path string) (float64, error) {
	output, err := p.runner.Output(ctx, p.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	if err != nil {
		if stderrors.Is(err, exec.ErrNotFound) {
			return 0, apperrors.Mark(apperrors.ErrToolUnavailable, err, "%s", p.binary)
		}
		return 0, apperrors.Mark(apperrors.ErrProbeFailed, err, "%s", path)
	}
	return ParseDuration(string(output))
}

// ParseDuration parses the single-value ffprobe duration output.
func ParseDuration(output string) (float64, error) {
	raw := strings.TrimSpace(output)
	duration, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.Mark(apperrors.ErrMalformedDuration, nil, "%q", raw)
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return 0, apperrors.Mark(apperrors.ErrMalformedDuration, nil, "%q is not a positive duration", raw)
	}
	return duration, nil
}

// FFmpeg slices audio and extracts audio tracks from video.
type FFmpeg struct {
	binary string
	runner CommandRunner
	logger *zap.Logger
}

func NewFFmpeg(binary string, runner CommandRunner, logger *zap.Logger) *FFmpeg {
	if binary == "" {
		binary = "ffmpeg"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpeg{binary: binary, runner: runner, logger: logger}
}

// Slice copies [start, start+length) of src into dst without re-encoding.
func (f *FFmpeg) Slice(ctx context.Context, src, dst string, start, length float64) error {
	_, err := f.runner.Output(ctx, f.binary,
		"-hide_banner", "-loglevel", "error", "-y",
		"-ss", formatSeconds(start),
		"-t", formatSeconds(length),
		"-i", src,
		"-c", "copy", "-map", "0",
		dst)
	if err != nil {
		return f.toolError(err)
	}
	return nil
}

// ExtractAudio writes the audio track of videoPath to a sibling .mp3 and returns its path.
// An existing .mp3 is reused.
func (f *FFmpeg) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	mp3Path := strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".mp3"

	if _, err := os.Stat(mp3Path); err == nil {
		f.logger.Info("MP3 file already exists, skipping extraction", zap.String("path", mp3Path))
		return mp3Path, nil
	}

	f.logger.Info("extracting audio", zap.String("source", videoPath), zap.String("target", mp3Path))
	_, err := f.runner.Output(ctx, f.binary,
		"-hide_banner", "-loglevel", "error",
		"-i", videoPath,
		"-q:a", "9", "-map", "a",
		mp3Path)
	if err != nil {
		if stderrors.Is(err, exec.ErrNotFound) {
			return "", apperrors.Mark(apperrors.ErrToolUnavailable, err, "%s", f.binary)
		}
		// A partial mp3 would otherwise be reused by the next run.
		if rerr := os.Remove(mp3Path); rerr != nil && !stderrors.Is(rerr, os.ErrNotExist) {
			f.logger.Warn("failed to remove partial audio file", zap.String("path", mp3Path), zap.Error(rerr))
		}
		return "", apperrors.Mark(apperrors.ErrExtractFailed, err, "%s", videoPath)
	}

	f.logger.Info("audio extraction completed", zap.String("path", mp3Path))
	return mp3Path, nil
}

func (f *FFmpeg) toolError(err error) error {
	if stderrors.Is(err, exec.ErrNotFound) {
		return apperrors.Mark(apperrors.ErrToolUnavailable, err, "%s", f.binary)
	}
	return err
}

// IsVideo reports whether path needs audio extraction before transcription.
func IsVideo(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp4")
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}
