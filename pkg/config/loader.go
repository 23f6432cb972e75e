package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	viper.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	viper.BindEnv("knowledge.file", "KNOWLEDGE_FILE", "APP_KNOWLEDGE_FILE")
	viper.BindEnv("cache.redis_url", "REDIS_URL", "APP_CACHE_REDIS_URL")
	viper.BindEnv("translate.api_key", "TRANSLATE_API_KEY")
	viper.BindEnv("speech.api_key", "SPEECH_API_KEY")
	viper.BindEnv("llm.api_key", "OPENROUTER_API_KEY", "APP_LLM_API_KEY")
	viper.BindEnv("vault.address", "VAULT_ADDR")
	viper.BindEnv("vault.token", "VAULT_TOKEN")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file: defaults plus env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "campus-assistant")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")

	viper.SetDefault("http.port", 5001)
	viper.SetDefault("http.read_timeout", "15s")
	viper.SetDefault("http.write_timeout", "15s")
	viper.SetDefault("http.idle_timeout", "60s")
	viper.SetDefault("http.body_limit", 10*1024*1024)

	viper.SetDefault("knowledge.file", "campus_knowledge.json")

	viper.SetDefault("cache.search_ttl", "30s")
	viper.SetDefault("cache.cleanup_interval", "1m")

	viper.SetDefault("assistant.target_language", "en")
	viper.SetDefault("assistant.max_event_enrichment", 3)
	viper.SetDefault("assistant.history_limit", 200)
	viper.SetDefault("assistant.llm_confidence_floor", 0.6)

	viper.SetDefault("translate.timeout", "10s")
	viper.SetDefault("speech.timeout", "30s")
	viper.SetDefault("speech.language", "en-US")

	viper.SetDefault("llm.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("llm.model", "deepseek/deepseek-chat-v3.1:free")
	viper.SetDefault("llm.max_tokens", 800)
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.title", "campus-assistant")

	viper.SetDefault("opentelemetry.service_name", "campus-assistant")
	viper.SetDefault("opentelemetry.jaeger.endpoint", "http://jaeger:14268/api/traces")

	viper.SetDefault("prometheus.enabled", true)
	viper.SetDefault("prometheus.path", "/metrics")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", "60s")
	viper.SetDefault("circuit_breaker.timeout", "30s")
	viper.SetDefault("circuit_breaker.min_requests", 5)
	viper.SetDefault("circuit_breaker.failure_rate", 0.6)

	viper.SetDefault("feature_flags.voice", true)
	viper.SetDefault("feature_flags.translation", true)
	viper.SetDefault("feature_flags.llm_fallback", false)
}
