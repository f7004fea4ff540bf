package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultAllowedOrigins = "https://email-assistant.onrender.com,http://localhost:5500,http://127.0.0.1:5500"

type Config struct {
	APIPort  string
	LogLevel string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	LLMTimeoutSeconds            int
	LLMBreakerEnabled            bool
	LLMBreakerMinRequests        int
	LLMBreakerFailureRatio       float64
	LLMBreakerOpenTimeoutSeconds int

	AllowedOrigins []string
	MaxUploadBytes int64
}

func (c Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

func (c Config) LLMBreakerOpenTimeout() time.Duration {
	return time.Duration(c.LLMBreakerOpenTimeoutSeconds) * time.Second
}

// Load reads configuration from the environment. When CONFIG_FILE names a YAML
// file, its top-level keys (same names as the env vars) replace the built-in
// defaults and the environment still wins over both.
func Load() (Config, error) {
	src := source{}
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		src.file = file
	}

	return Config{
		APIPort:  src.env("API_PORT", "8080"),
		LogLevel: src.env("LOG_LEVEL", "info"),

		GeminiAPIKey:  src.env("GEMINI_API_KEY", ""),
		GeminiModel:   src.env("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL: src.env("GEMINI_BASE_URL", ""),

		LLMTimeoutSeconds:            src.envPositiveInt("LLM_TIMEOUT_SECONDS", 60),
		LLMBreakerEnabled:            src.envBool("LLM_BREAKER_ENABLED", true),
		LLMBreakerMinRequests:        src.envInt("LLM_BREAKER_MIN_REQUESTS", 10),
		LLMBreakerFailureRatio:       src.envFloat("LLM_BREAKER_FAILURE_RATIO", 0.5),
		LLMBreakerOpenTimeoutSeconds: src.envPositiveInt("LLM_BREAKER_OPEN_TIMEOUT_SECONDS", 30),

		AllowedOrigins: src.envList("ALLOWED_ORIGINS", defaultAllowedOrigins),
		MaxUploadBytes: int64(src.envPositiveInt("MAX_UPLOAD_BYTES", 10<<20)),
	}, nil
}

func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	out := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				items = append(items, fmt.Sprint(item))
			}
			out[strings.ToUpper(key)] = strings.Join(items, ",")
		case map[string]any:
			return nil, fmt.Errorf("parse config file %s: key %s must be a scalar or a list", path, key)
		default:
			out[strings.ToUpper(key)] = fmt.Sprint(v)
		}
	}
	return out, nil
}

type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return s.file[key]
}

func (s source) env(key, fallback string) string {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	return v
}

func (s source) envInt(key string, fallback int) int {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

// envPositiveInt treats zero and negative values as unset.
func (s source) envPositiveInt(key string, fallback int) int {
	if n := s.envInt(key, fallback); n > 0 {
		return n
	}
	return fallback
}

func (s source) envFloat(key string, fallback float64) float64 {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return f
}

func (s source) envBool(key string, fallback bool) bool {
	v := s.lookup(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// envList splits a comma separated value and drops blank entries.
func (s source) envList(key, fallback string) []string {
	raw := s.env(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
