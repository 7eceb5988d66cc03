package config

import "time"

// Default configuration constants
const (
	// Transcription service
	DefaultModel            = "gpt-4o-transcribe-diarize"
	DefaultLanguage         = "it"
	DefaultResponseFormat   = "diarized_json"
	DefaultChunkingStrategy = "auto"

	// Windowing, in seconds. The service rejects requests longer than roughly 1500s.
	DefaultMaxRequestDurationSec = 1400
	DefaultWindowLengthSec       = 900
	DefaultWindowOverlapSec      = 5

	// Timeout and retry defaults
	DefaultRequestTimeout = 600 * time.Second
	DefaultMaxAttempts    = 3
	DefaultRetryBackoff   = 5 * time.Second

	// Directories
	DefaultSourceDir = "./sources"
	DefaultOutputDir = "./output"

	// Run history
	DefaultHistoryDriver = "sqlite"
	DefaultHistoryDSN    = "data/transcription.db"

	// Settings file looked up in the working directory when --config is not given
	DefaultSettingsFile = "s2t.yaml"
)
