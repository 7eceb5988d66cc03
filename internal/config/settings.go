package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	apperrors "speech2text/internal/app/errors"
)

// Settings holds every tunable of a transcription run.
type Settings struct {
	Model            string `yaml:"model" validate:"required"`
	Language         string `yaml:"language"`
	ResponseFormat   string `yaml:"response_format" validate:"required,oneof=diarized_json json verbose_json text srt vtt"`
	ChunkingStrategy string `yaml:"chunking_strategy"`
	BaseURL          string `yaml:"base_url" validate:"omitempty,url"`

	MaxRequestDurationSec float64 `yaml:"max_request_duration_sec" validate:"gt=0"`
	WindowLengthSec       float64 `yaml:"window_length_sec" validate:"gt=0"`
	WindowOverlapSec      float64 `yaml:"window_overlap_sec" validate:"gte=0,ltfield=WindowLengthSec"`

	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxAttempts    int           `yaml:"max_attempts" validate:"gte=1"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`

	SourceDir string `yaml:"source_dir" validate:"required"`
	OutputDir string `yaml:"output_dir" validate:"required"`
	// WorkDir hosts the per-run window workspaces; empty means os.TempDir.
	WorkDir string `yaml:"work_dir"`

	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	History HistorySettings `yaml:"history"`

	MetricsTextfile string `yaml:"metrics_textfile"`
}

// HistorySettings selects the run-history store.
type HistorySettings struct {
	Driver string `yaml:"driver" validate:"oneof=sqlite postgres none"`
	DSN    string `yaml:"dsn"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Model:                 DefaultModel,
		Language:              DefaultLanguage,
		ResponseFormat:        DefaultResponseFormat,
		ChunkingStrategy:      DefaultChunkingStrategy,
		MaxRequestDurationSec: DefaultMaxRequestDurationSec,
		WindowLengthSec:       DefaultWindowLengthSec,
		WindowOverlapSec:      DefaultWindowOverlapSec,
		RequestTimeout:        DefaultRequestTimeout,
		MaxAttempts:           DefaultMaxAttempts,
		RetryBackoff:          DefaultRetryBackoff,
		SourceDir:             DefaultSourceDir,
		OutputDir:             DefaultOutputDir,
		FFmpegPath:            "ffmpeg",
		FFprobePath:           "ffprobe",
		History: HistorySettings{
			Driver: DefaultHistoryDriver,
			DSN:    DefaultHistoryDSN,
		},
	}
}

// LoadSettings reads a YAML settings file over the defaults and applies
// environment overrides. An empty path falls back to DefaultSettingsFile,
// which may be absent; an explicit path must exist.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	explicit := path != ""
	if !explicit {
		path = DefaultSettingsFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, apperrors.Mark(apperrors.ErrInvalidConfig, err, "parse %s", path)
		}
	case stderrors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	settings.applyEnv(GetNetworkConfig())
	return settings, nil
}

func (s *Settings) applyEnv(nc *NetworkConfig) {
	if nc.OpenAIBaseURL != "" {
		s.BaseURL = nc.OpenAIBaseURL
	}
	if v := os.Getenv("S2T_MODEL"); v != "" {
		s.Model = v
	}
	if v, ok := os.LookupEnv("S2T_LANGUAGE"); ok {
		s.Language = v
	}
	if s.History.Driver == "postgres" && s.History.DSN == "" {
		s.History.DSN = nc.GetPostgresConnectionString()
	}
}

// Validate checks the settings. Every failure is marked ErrInvalidConfig.
func (s *Settings) Validate() error {
	if err := newValidator().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			return describeFieldError(verrs[0])
		}
		return apperrors.Mark(apperrors.ErrInvalidConfig, err, "")
	}

	if err := ValidateWindow(s.WindowLengthSec, s.WindowOverlapSec, s.MaxRequestDurationSec); err != nil {
		return apperrors.Mark(apperrors.ErrInvalidConfig, err, "")
	}
	if err := ValidateTimeout(s.RequestTimeout, "request_timeout"); err != nil {
		return err
	}
	if err := ValidateAttempts(s.MaxAttempts, "max_attempts"); err != nil {
		return err
	}
	if err := ValidateRetryDelay(s.RetryBackoff, "retry_backoff"); err != nil {
		return err
	}
	if s.BaseURL != "" {
		if err := ValidateURL(s.BaseURL, "OpenAI base"); err != nil {
			return apperrors.Mark(apperrors.ErrInvalidConfig, err, "")
		}
	}
	if s.History.Driver != "none" && s.History.DSN == "" {
		return apperrors.RequiredField("history.dsn")
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describeFieldError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Settings.")
	switch fe.Tag() {
	case "required":
		return apperrors.RequiredField(field)
	case "ltfield":
		return apperrors.InvalidField(field, "must be shorter than window_length_sec")
	case "oneof":
		return apperrors.InvalidField(field, fmt.Sprintf("%q is not one of [%s]", fe.Value(), fe.Param()))
	default:
		return apperrors.InvalidField(field, fmt.Sprintf("failed %s=%s (got %v)", fe.Tag(), fe.Param(), fe.Value()))
	}
}
