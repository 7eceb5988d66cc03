package testutil

import (
	"sort"
	"strconv"
	"sync"

	apperrors "speech2text/internal/app/errors"
	"speech2text/internal/app/model"
)

// MockTranscriptionDAO is an in-memory implementation of the repository.TranscriptionDAO interface
type MockTranscriptionDAO struct {
	mu sync.Mutex

	runs   map[int64]model.TranscriptionRun
	nextID int64

	// ErrorMap is keyed by method name
	ErrorMap map[string]error
	Closed   bool
}

// NewMockTranscriptionDAO creates an empty MockTranscriptionDAO
func NewMockTranscriptionDAO() *MockTranscriptionDAO {
	return &MockTranscriptionDAO{
		runs:     make(map[int64]model.TranscriptionRun),
		nextID:   1,
		ErrorMap: make(map[string]error),
	}
}

// SetErrorForMethod makes method fail with err
func (m *MockTranscriptionDAO) SetErrorForMethod(method string, err error) *MockTranscriptionDAO {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[method] = err
	return m
}

func (m *MockTranscriptionDAO) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.ErrorMap["Close"]
}

func (m *MockTranscriptionDAO) CheckIfFileProcessed(fileName string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["CheckIfFileProcessed"]; err != nil {
		return 0, err
	}

	var latest int64
	for id, r := range m.runs {
		if r.FileName() == fileName && !r.HasError && id > latest {
			latest = id
		}
	}
	return latest, nil
}

func (m *MockTranscriptionDAO) RecordToDB(run *model.TranscriptionRun) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["RecordToDB"]; err != nil {
		return 0, err
	}

	id := m.nextID
	m.nextID++
	run.ID = id
	stored := *run
	stored.Segments = append([]model.Segment(nil), run.Segments...)
	m.runs[id] = stored
	return id, nil
}

func (m *MockTranscriptionDAO) ListRuns(limit int) ([]model.TranscriptionRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["ListRuns"]; err != nil {
		return nil, err
	}

	runs := make([]model.TranscriptionRun, 0, len(m.runs))
	for _, r := range m.runs {
		r.Segments = nil
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID > runs[j].ID })
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (m *MockTranscriptionDAO) GetRun(id int64) (*model.TranscriptionRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ErrorMap["GetRun"]; err != nil {
		return nil, err
	}

	r, ok := m.runs[id]
	if !ok {
		return nil, apperrors.NotFound("run", strconv.FormatInt(id, 10))
	}
	return &r, nil
}

// Runs returns every stored run in insertion order
func (m *MockTranscriptionDAO) Runs() []model.TranscriptionRun {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := make([]model.TranscriptionRun, 0, len(m.runs))
	for id := int64(1); id < m.nextID; id++ {
		if r, ok := m.runs[id]; ok {
			runs = append(runs, r)
		}
	}
	return runs
}
