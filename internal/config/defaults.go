package config

const (
	defaultConfigPath            = "~/.config/vidsentiment/config.toml"
	defaultWorkDir               = "~/.local/share/vidsentiment/work"
	defaultLogDir                = "~/.local/share/vidsentiment/logs"
	defaultStateDir              = "~/.local/share/vidsentiment/state"
	defaultServerBind            = "127.0.0.1:8000"
	defaultRequestsPerMinute     = 30
	defaultBurst                 = 5
	defaultMaxComments           = 100
	defaultSourceTimeoutSeconds  = 120
	defaultTranscriptionBackend  = "whisperx"
	defaultWhisperXModel         = "base"
	defaultOpenAIModel           = "whisper-1"
	defaultTranscriptionTimeout  = 900
	defaultPositiveThreshold     = 0.05
	defaultNegativeThreshold     = -0.05
	defaultVietnameseBackend     = "lexicon"
	defaultSentimentTimeout      = 15
	defaultCacheBackend          = "sqlite"
	defaultCacheTTLHours         = 24 * 7
	defaultValkeyAddress         = "127.0.0.1:6379"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	TranscriptionBackendWhisperX = "whisperx"
	TranscriptionBackendOpenAI   = "openai"
	TranscriptionBackendNone     = "none"
	VietnameseBackendLexicon     = "lexicon"
	VietnameseBackendHTTP        = "http"
	VietnameseBackendHugot       = "hugot"
	CacheBackendSQLite           = "sqlite"
	CacheBackendValkey           = "valkey"
	CacheBackendNone             = "none"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir:  defaultWorkDir,
			LogDir:   defaultLogDir,
			StateDir: defaultStateDir,
		},
		Server: Server{
			Bind:              defaultServerBind,
			RequestsPerMinute: defaultRequestsPerMinute,
			Burst:             defaultBurst,
			AllowedOrigins:    []string{"*"},
		},
		Source: Source{
			MaxComments:    defaultMaxComments,
			TimeoutSeconds: defaultSourceTimeoutSeconds,
		},
		Transcription: Transcription{
			Backend:        defaultTranscriptionBackend,
			TimeoutSeconds: defaultTranscriptionTimeout,
		},
		Sentiment: Sentiment{
			PositiveThreshold: defaultPositiveThreshold,
			NegativeThreshold: defaultNegativeThreshold,
			VietnameseBackend: defaultVietnameseBackend,
			TimeoutSeconds:    defaultSentimentTimeout,
		},
		Cache: Cache{
			Backend:       defaultCacheBackend,
			TTLHours:      defaultCacheTTLHours,
			ValkeyAddress: defaultValkeyAddress,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
