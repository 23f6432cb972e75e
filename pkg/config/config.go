package config

import "time"

type Config struct {
	App            AppConfig            `mapstructure:"app"`
	HTTP           HTTPConfig           `mapstructure:"http"`
	Knowledge      KnowledgeConfig      `mapstructure:"knowledge"`
	Cache          CacheConfig          `mapstructure:"cache"`
	Assistant      AssistantConfig      `mapstructure:"assistant"`
	Translate      TranslateConfig      `mapstructure:"translate"`
	Speech         SpeechConfig         `mapstructure:"speech"`
	LLM            LLMConfig            `mapstructure:"llm"`
	Vault          VaultConfig          `mapstructure:"vault"`
	OpenTelemetry  OpenTelemetryConfig  `mapstructure:"opentelemetry"`
	Prometheus     PrometheusConfig     `mapstructure:"prometheus"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	CORS           CORSConfig           `mapstructure:"cors"`
	FeatureFlags   FeatureFlagsConfig   `mapstructure:"feature_flags"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	BodyLimit      int           `mapstructure:"body_limit"`
}

type KnowledgeConfig struct {
	// File is the path of the persisted knowledge document.
	File string `mapstructure:"file"`
}

type CacheConfig struct {
	RedisURL        string        `mapstructure:"redis_url"`
	SearchTTL       time.Duration `mapstructure:"search_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type AssistantConfig struct {
	// TargetLanguage is the language the classifier normalises input into.
	TargetLanguage string `mapstructure:"target_language"`
	// MaxEventEnrichment caps how many upcoming events a reply mentions.
	MaxEventEnrichment int `mapstructure:"max_event_enrichment"`
	// HistoryLimit caps the in-memory chat transcript length.
	HistoryLimit int `mapstructure:"history_limit"`
	// LLMConfidenceFloor routes low-confidence general inquiries to the LLM
	// path when the feature flag is on.
	LLMConfidenceFloor float64 `mapstructure:"llm_confidence_floor"`
}

type TranslateConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type SpeechConfig struct {
	STTEndpoint string        `mapstructure:"stt_endpoint"`
	TTSEndpoint string        `mapstructure:"tts_endpoint"`
	APIKey      string        `mapstructure:"api_key"`
	Language    string        `mapstructure:"language"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type LLMConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Referer     string  `mapstructure:"referer"`
	Title       string  `mapstructure:"title"`
}

type VaultConfig struct {
	Address string `mapstructure:"address"`
	Token   string `mapstructure:"token"`
}

type OpenTelemetryConfig struct {
	Enabled     bool         `mapstructure:"enabled"`
	ServiceName string       `mapstructure:"service_name"`
	Jaeger      JaegerConfig `mapstructure:"jaeger"`
}

type JaegerConfig struct {
	Endpoint string `mapstructure:"endpoint"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type CircuitBreakerConfig struct {
	MaxRequests uint32        `mapstructure:"max_requests"`
	Interval    time.Duration `mapstructure:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MinRequests uint32        `mapstructure:"min_requests"`
	FailureRate float64       `mapstructure:"failure_rate"`
}

type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	ExposeHeaders  []string `mapstructure:"expose_headers"`
	MaxAge         int      `mapstructure:"max_age"`
	Credentials    bool     `mapstructure:"credentials"`
}

type FeatureFlagsConfig struct {
	Voice       bool `mapstructure:"voice"`
	Translation bool `mapstructure:"translation"`
	LLMFallback bool `mapstructure:"llm_fallback"`
}
