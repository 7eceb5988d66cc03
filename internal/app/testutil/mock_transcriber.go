package testutil

import (
	"context"
	"sync"

	"speech2text/internal/app/model"
)

// MockTranscriber is a configurable implementation of the api.Transcriber interface
type MockTranscriber struct {
	mu sync.Mutex

	// Configuration options
	DefaultResponse model.TranscriptionResult
	DefaultError    error

	// ResponseMap and ErrorMap are keyed by audio path
	ResponseMap map[string]model.TranscriptionResult
	ErrorMap    map[string]error
	// FailuresBeforeSuccess makes the first n calls for a path fail with TransientError
	FailuresBeforeSuccess map[string]int
	TransientError        error
	// ResponseFunc, when set, answers every call not consumed by FailuresBeforeSuccess
	ResponseFunc func(audioPath string) (model.TranscriptionResult, error)

	// State tracking
	CallHistory []TranscriptionCall
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	AudioPath string
	Language  string
	Err       error
}

// NewMockTranscriber creates a new MockTranscriber with sensible defaults
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		DefaultResponse:       model.PlainText{Text: "This is a mock transcription result."},
		ResponseMap:           make(map[string]model.TranscriptionResult),
		ErrorMap:              make(map[string]error),
		FailuresBeforeSuccess: make(map[string]int),
	}
}

// Transcribe implements the api.Transcriber interface
func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath, language string) (model.TranscriptionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := TranscriptionCall{AudioPath: audioPath, Language: language}
	result, err := m.respond(ctx, audioPath)
	call.Err = err
	m.CallHistory = append(m.CallHistory, call)
	return result, err
}

func (m *MockTranscriber) respond(ctx context.Context, audioPath string) (model.TranscriptionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n := m.FailuresBeforeSuccess[audioPath]; n > 0 {
		m.FailuresBeforeSuccess[audioPath] = n - 1
		return nil, m.TransientError
	}
	if m.ResponseFunc != nil {
		return m.ResponseFunc(audioPath)
	}
	if err, ok := m.ErrorMap[audioPath]; ok {
		return nil, err
	}
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	if result, ok := m.ResponseMap[audioPath]; ok {
		return result, nil
	}
	return m.DefaultResponse, nil
}

// SetResponseForFile sets a specific response for a given file path
func (m *MockTranscriber) SetResponseForFile(audioPath string, result model.TranscriptionResult) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[audioPath] = result
	return m
}

// SetErrorForFile sets a specific error for a given file path
func (m *MockTranscriber) SetErrorForFile(audioPath string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[audioPath] = err
	return m
}

// FailTransiently makes the next n calls for audioPath fail with err
func (m *MockTranscriber) FailTransiently(audioPath string, n int, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailuresBeforeSuccess[audioPath] = n
	m.TransientError = err
	return m
}

// Calls returns a copy of the call history
func (m *MockTranscriber) Calls() []TranscriptionCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TranscriptionCall(nil), m.CallHistory...)
}

// CallCountFor returns how many calls were made for audioPath
func (m *MockTranscriber) CallCountFor(audioPath string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.CallHistory {
		if c.AudioPath == audioPath {
			n++
		}
	}
	return n
}
