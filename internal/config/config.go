package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/opsdata/opschat/internal/constants"
)

type Config struct {
	// Postgres settings (query execution target)
	PGHost     string
	PGPort     int
	PGDatabase string
	PGUser     string
	PGPassword string

	// Dictionary settings
	DictionaryProvider string
	SupabaseURL        string
	SupabaseKey        string
	DictionaryDSN      string

	// LLM settings
	LLMProvider      string
	GeminiAPIKey     string
	OpenRouterAPIKey string
	LLMModel         string

	// HTTP API settings
	APIAddr     string
	APIKey      string
	DevMode     bool
	HTTPTimeout time.Duration
}

func Load() *Config {
	return &Config{
		// Postgres
		PGHost:     getEnv("PG_HOST", "localhost"),
		PGPort:     getIntEnv("PG_PORT", 5432),
		PGDatabase: getEnv("PG_DATABASE", ""),
		PGUser:     getEnv("PG_USER", "postgres"),
		PGPassword: getEnv("PG_PASSWORD", ""),

		// Dictionary
		DictionaryProvider: getEnv("DICTIONARY_PROVIDER", "supabase"),
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseKey:        getEnv("SUPABASE_KEY", ""),
		DictionaryDSN:      getEnv("DICTIONARY_DATABASE_URL", ""),

		// LLM
		LLMProvider:      getEnv("LLM_PROVIDER", constants.ProviderGoogleAI),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		LLMModel:         getEnv("LLM_MODEL", ""),

		// HTTP API
		APIAddr:     getEnv("API_ADDR", ":8080"),
		APIKey:      getEnv("API_KEY", ""),
		DevMode:     getBoolEnv("DEV_MODE", false),
		HTTPTimeout: getDurationEnv("HTTP_TIMEOUT", 12*time.Second),
	}
}

// Validate reports the first configuration problem that would prevent the
// process from serving requests.
func (c *Config) Validate() error {
	if c.PGDatabase == "" {
		return fmt.Errorf("PG_DATABASE is required")
	}

	switch c.DictionaryProvider {
	case "supabase":
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required when DICTIONARY_PROVIDER=supabase")
		}
		if c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_KEY is required when DICTIONARY_PROVIDER=supabase")
		}
	case "postgres":
		if c.DictionaryDSN == "" {
			return fmt.Errorf("DICTIONARY_DATABASE_URL is required when DICTIONARY_PROVIDER=postgres")
		}
	default:
		return fmt.Errorf("unsupported DICTIONARY_PROVIDER: %s", c.DictionaryProvider)
	}

	switch c.LLMProvider {
	case constants.ProviderGoogleAI:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=%s", constants.ProviderGoogleAI)
		}
	case constants.ProviderOpenAI:
		if c.OpenRouterAPIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required when LLM_PROVIDER=%s", constants.ProviderOpenAI)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %s", c.LLMProvider)
	}

	return nil
}

// PostgresDSN assembles the connection URL for the query execution target.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PGUser, c.PGPassword),
		Host:   net.JoinHostPort(c.PGHost, strconv.Itoa(c.PGPort)),
		Path:   "/" + c.PGDatabase,
	}
	return u.String()
}

// LLMAPIKey returns the API key matching the configured provider.
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == constants.ProviderOpenAI {
		return c.OpenRouterAPIKey
	}
	return c.GeminiAPIKey
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
