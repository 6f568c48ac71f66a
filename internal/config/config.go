package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AppEnv   string `yaml:"app_env"`
	HTTPAddr string `yaml:"http_addr"`

	PostgresDSN   string `yaml:"postgres_dsn"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`

	JWTSecret string `yaml:"jwt_secret"`

	LLMProvider     string `yaml:"llm_provider"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`
	DefaultLLMModel string `yaml:"default_llm_model"`

	MatchCacheTTLSeconds int `yaml:"match_cache_ttl_seconds"`
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func Load() Config {
	cfg := Config{
		AppEnv:   getenv("APP_ENV", "development"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		PostgresDSN: getenv(
			"POSTGRES_DSN",
			"host=localhost user=postgres password=postgres dbname=jobpilot port=5432 sslmode=disable",
		),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		LLMProvider:     getenv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		DefaultLLMModel: getenv("DEFAULT_LLM_MODEL", "gemini-1.5-flash"),

		MatchCacheTTLSeconds: getenvInt("MATCH_CACHE_TTL_SECONDS", 600),
	}

	// Optional YAML overlay for values not set in the environment.
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			panic(fmt.Errorf("config file %s: %w", path, err))
		}
	}

	if cfg.JWTSecret == "" {
		panic(fmt.Errorf("JWT_SECRET is required"))
	}
	return cfg
}

func (c *Config) overlayFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var file Config
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return err
	}

	overlay := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
		}
	}
	overlay(&c.PostgresDSN, file.PostgresDSN)
	overlay(&c.RedisAddr, file.RedisAddr)
	overlay(&c.RedisPassword, file.RedisPassword)
	overlay(&c.JWTSecret, file.JWTSecret)
	overlay(&c.GeminiAPIKey, file.GeminiAPIKey)
	overlay(&c.DefaultLLMModel, file.DefaultLLMModel)
	if c.MatchCacheTTLSeconds == 0 && file.MatchCacheTTLSeconds > 0 {
		c.MatchCacheTTLSeconds = file.MatchCacheTTLSeconds
	}
	return nil
}
