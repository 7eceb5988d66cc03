// Package diarize transcribes audio with OpenAI's diarizing models.
package diarize

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"speech2text/internal/app/api"
	"speech2text/internal/app/model"
)

const (
	providerName = "openai"

	// ResponseFormatDiarizedJSON returns speaker-labelled segments.
	ResponseFormatDiarizedJSON openai.AudioResponseFormat = "diarized_json"
)

// Transcriber implements api.Transcriber on top of go-openai.
type Transcriber struct {
	client *openai.Client
	model  string
	format openai.AudioResponseFormat
	logger *zap.Logger
}

// NewTranscriber returns a Transcriber using the given model and response format.
func NewTranscriber(client *openai.Client, modelName, format string, logger *zap.Logger) *Transcriber {
	if format == "" {
		format = string(ResponseFormatDiarizedJSON)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcriber{
		client: client,
		model:  modelName,
		format: openai.AudioResponseFormat(format),
		logger: logger,
	}
}

// Transcribe sends audioPath to the transcription endpoint.
func (t *Transcriber) Transcribe(ctx context.Context, audioPath, language string) (model.TranscriptionResult, error) {
	req := openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
		Language: language,
		Format:   t.format,
	}

	start := time.Now()
	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}

	var result model.TranscriptionResult
	if req.HasJSONResponse() {
		result = fromAudioResponse(resp)
	} else {
		result = ParseResponse(resp.Text)
	}

	t.logger.Debug("transcription received",
		zap.String("path", audioPath),
		zap.String("model", t.model),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("diarized", isDiarized(result)))
	return result, nil
}

type diarizedSegment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
}

type diarizedResponse struct {
	Text     string             `json:"text"`
	Segments *[]diarizedSegment `json:"segments"`
}

// ParseResponse interprets a raw response body. A JSON object carrying a
// segments array is Diarized; a JSON object without one contributes its text;
// anything else is taken verbatim as PlainText.
func ParseResponse(body string) model.TranscriptionResult {
	trimmed := strings.TrimSpace(body)

	var decoded diarizedResponse
	if !strings.HasPrefix(trimmed, "{") || json.Unmarshal([]byte(trimmed), &decoded) != nil {
		return model.PlainText{Text: trimmed}
	}
	if decoded.Segments == nil {
		return model.PlainText{Text: decoded.Text}
	}

	segments := make([]model.Segment, 0, len(*decoded.Segments))
	for _, s := range *decoded.Segments {
		segments = append(segments, model.Segment{
			StartSeconds: s.Start,
			EndSeconds:   s.End,
			Speaker:      s.Speaker,
			Text:         s.Text,
		})
	}
	return model.Diarized{Segments: segments, Text: decoded.Text}
}

func fromAudioResponse(resp openai.AudioResponse) model.TranscriptionResult {
	if len(resp.Segments) == 0 {
		return model.PlainText{Text: resp.Text}
	}
	segments := make([]model.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, model.Segment{
			StartSeconds: s.Start,
			EndSeconds:   s.End,
			Text:         s.Text,
		})
	}
	return model.Diarized{Segments: segments, Text: resp.Text}
}

func isDiarized(result model.TranscriptionResult) bool {
	_, ok := result.(model.Diarized)
	return ok
}

// mapError converts go-openai failures into api.TranscriptionError. Local
// file errors and cancellation are returned as they are.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		code := codeForStatus(apiErr.HTTPStatusCode)
		return &api.TranscriptionError{
			Code:        code,
			Message:     apiErr.Message,
			Provider:    providerName,
			StatusCode:  apiErr.HTTPStatusCode,
			Suggestions: suggestionsFor(code),
			Cause:       err,
		}
	case errors.As(err, &reqErr):
		code := codeForStatus(reqErr.HTTPStatusCode)
		message := strings.TrimSpace(string(reqErr.Body))
		if message == "" {
			message = reqErr.HTTPStatus
		}
		return &api.TranscriptionError{
			Code:        code,
			Message:     message,
			Provider:    providerName,
			StatusCode:  reqErr.HTTPStatusCode,
			Suggestions: suggestionsFor(code),
			Cause:       err,
		}
	case isTimeout(err):
		return &api.TranscriptionError{
			Code:        api.CodeTimeout,
			Message:     err.Error(),
			Provider:    providerName,
			Suggestions: suggestionsFor(api.CodeTimeout),
			Cause:       err,
		}
	default:
		return &api.TranscriptionError{
			Code:        api.CodeNetwork,
			Message:     err.Error(),
			Provider:    providerName,
			Suggestions: suggestionsFor(api.CodeNetwork),
			Cause:       err,
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

func codeForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return api.CodeAuthentication
	case status == http.StatusTooManyRequests:
		return api.CodeRateLimited
	case status == http.StatusRequestEntityTooLarge:
		return api.CodeFileTooLarge
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return api.CodeTimeout
	case status >= 500:
		return api.CodeServerError
	case status >= 400:
		return api.CodeInvalidRequest
	default:
		return api.CodeBadResponse
	}
}

func suggestionsFor(code string) []string {
	switch code {
	case api.CodeAuthentication:
		return []string{"Check that OPENAI_API_KEY is set and valid"}
	case api.CodeRateLimited:
		return []string{"Wait before retrying", "Raise retry_backoff to space out attempts"}
	case api.CodeFileTooLarge, api.CodeInvalidRequest:
		return []string{"Lower window_length_sec or max_request_duration_sec", "Check that the model supports the chosen response_format"}
	case api.CodeTimeout:
		return []string{"Raise request_timeout", "Lower window_length_sec to send shorter windows"}
	case api.CodeServerError:
		return []string{"The service is having trouble; retry later"}
	default:
		return []string{"Check network connectivity and base_url"}
	}
}
