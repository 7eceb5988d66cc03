package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// SupportedExtensions lists the media files offered for transcription.
var SupportedExtensions = []string{".mp3", ".mp4", ".opus", ".wav", ".m4a"}

// IsSupported reports whether name has a supported media extension.
func IsSupported(name string) bool {
	return lo.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(name)))
}

// EnsureDir creates dir if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ListMediaFiles returns the supported media files in inputDir, newest first.
func ListMediaFiles(inputDir string) ([]model.FileInfo, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NotFound("source directory", inputDir)
		}
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var fileInfos []model.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsSupported(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		fileInfos = append(fileInfos, model.FileInfo{
			FullPath: filepath.Join(inputDir, entry.Name()),
			ModTime:  info.ModTime(),
			Name:     entry.Name(),
		})
	}

	if len(fileInfos) == 0 {
		return nil, apperrors.Mark(apperrors.ErrNoMediaFiles, nil, "in %s", inputDir)
	}

	sort.SliceStable(fileInfos, func(i, j int) bool {
		return fileInfos[i].ModTime.After(fileInfos[j].ModTime)
	})
	return fileInfos, nil
}

// ChooseFile prints a numbered list of files to out and reads a 1-based
// choice from in, asking again until the answer is valid.
func ChooseFile(fileInfos []model.FileInfo, in io.Reader, out io.Writer) (model.FileInfo, error) {
	if len(fileInfos) == 0 {
		return model.FileInfo{}, apperrors.ErrNoMediaFiles
	}

	fmt.Fprintln(out, "\nAvailable files (sorted by most recent):")
	for i, f := range fileInfos {
		fmt.Fprintf(out, "%d. %s (%s)\n", i+1, f.Name, f.ModTime.Format("2006-01-02 15:04:05"))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "\nSelect a file (1-%d): ", len(fileInfos))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return model.FileInfo{}, apperrors.Mark(apperrors.ErrInvalidChoice, err, "")
			}
			return model.FileInfo{}, apperrors.Mark(apperrors.ErrInvalidChoice, nil, "no selection made")
		}

		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "Invalid input. Please enter a number.")
			continue
		}
		if choice < 1 || choice > len(fileInfos) {
			fmt.Fprintf(out, "Please enter a number between 1 and %d\n", len(fileInfos))
			continue
		}
		return fileInfos[choice-1], nil
	}
}
