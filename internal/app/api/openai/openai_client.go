package openai

import (
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	apperrors "speech2text/internal/app/errors"
)

// ClientConfig configures the OpenAI client.
type ClientConfig struct {
	APIKey string
	// BaseURL points at an OpenAI-compatible endpoint; empty uses the public API.
	BaseURL string
	// Timeout bounds a whole request, upload and response included. Zero means no limit.
	Timeout time.Duration
	// FormFields are added to every transcription upload that does not already carry them.
	FormFields map[string]string
}

// NewClient builds a go-openai client for cfg. Every caller gets its own client.
func NewClient(cfg ClientConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, apperrors.Mark(apperrors.ErrMissingAPIKey, nil, "set OPENAI_API_KEY in the environment or a .env file")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = NewFormFieldDoer(&http.Client{Timeout: cfg.Timeout}, cfg.FormFields)

	return openai.NewClientWithConfig(config), nil
}
