package chunker

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"speech2text/internal/app/model"
)

// removeAll is swapped in tests.
var removeAll = os.RemoveAll

// workspace is a uniquely named directory holding one run's window files.
type workspace struct {
	dir  string
	once sync.Once
	err  error
}

func newWorkspace(parent string) (*workspace, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	dir := filepath.Join(parent, "segments_"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &workspace{dir: dir}, nil
}

func (w *workspace) Dir() string {
	return w.dir
}

func (w *workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Remove deletes the directory and everything in it. Later calls are no-ops.
func (w *workspace) Remove() error {
	w.once.Do(func() {
		w.err = removeAll(w.dir)
	})
	return w.err
}

// Split is the outcome of Chunker.Split.
type Split struct {
	Windows   []model.Window
	workspace *workspace
}

// Workspace returns the directory holding the window files, or "" when
// the source was not split.
func (s *Split) Workspace() string {
	if s == nil || s.workspace == nil {
		return ""
	}
	return s.workspace.Dir()
}

// Close releases the window files. It is safe to call more than once.
func (s *Split) Close() error {
	if s == nil || s.workspace == nil {
		return nil
	}
	return s.workspace.Remove()
}
