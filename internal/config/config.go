// Package config builds the process configuration once at startup. Nothing
// else in the module reads the environment.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// XCreds holds the OAuth 1.0a user-context credentials for the X API.
type XCreds struct {
	APIKey       string
	APISecret    string
	AccessToken  string
	AccessSecret string
}

// LLM configures the text-generation collaborator.
type LLM struct {
	BaseURL     string
	GroqAPIKey  string
	Model       string
	Temperature float64
	MaxTokens   int
}

// News configures the headline providers.
type News struct {
	Country      string
	GNewsKey     string
	NewsAPIKey   string
	GNewsLimit   int
	NewsAPILimit int
}

// Config is the full configuration surface, constructed once in main and
// passed down explicitly.
type Config struct {
	X    XCreds
	LLM  LLM
	News News

	UseMemes        bool
	MemeTemplate    string
	TrendsPerWindow int

	HashtagsEnabled    bool
	HashtagsMax        int
	DisableTagsOnHeavy bool

	DailyLimit   int
	MonthlyLimit int

	AvoidSensitiveHumor bool
	CritiqueAuthorities bool

	DBPath   string
	TestMode bool
}

// Load reads .env (if present) and the environment, applying the same
// defaults the bot has always shipped with.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		X: XCreds{
			APIKey:       getString("X_API_KEY", ""),
			APISecret:    getString("X_API_SECRET", ""),
			AccessToken:  getString("X_ACCESS_TOKEN", ""),
			AccessSecret: getString("X_ACCESS_SECRET", ""),
		},
		LLM: LLM{
			BaseURL:     getString("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			GroqAPIKey:  getString("GROQ_API_KEY", ""),
			Model:       getString("LLM_MODEL", "llama-3.1-8b-instant"),
			Temperature: getFloat("LLM_TEMPERATURE", 0.8),
			MaxTokens:   getInt("LLM_MAX_TOKENS", 512),
		},
		News: News{
			Country:      getString("DEFAULT_COUNTRY", "in"),
			GNewsKey:     getString("GNEWS_API_KEY", ""),
			NewsAPIKey:   getString("NEWSAPI_KEY", ""),
			GNewsLimit:   getInt("GNEWS_LIMIT", 20),
			NewsAPILimit: getInt("NEWSAPI_LIMIT", 20),
		},

		UseMemes:        getBool("USE_MEMES", true),
		MemeTemplate:    getString("MEME_TEMPLATE", "assets/templates/meme1.jpg"),
		TrendsPerWindow: getInt("TRENDS_PER_WINDOW", 1),

		HashtagsEnabled:    getBool("HASHTAGS_ENABLED", true),
		HashtagsMax:        getInt("HASHTAGS_MAX", 2),
		DisableTagsOnHeavy: getBool("DISABLE_HASHTAGS_ON_SENSITIVE", true),

		DailyLimit:   getInt("DAILY_TWEET_LIMIT", 15),
		MonthlyLimit: getInt("MONTHLY_TWEET_LIMIT", 450),

		AvoidSensitiveHumor: getBool("AVOID_SENSITIVE_HUMOR", true),
		CritiqueAuthorities: getBool("CRITIQUE_AUTHORITIES", true),

		DBPath:   getString("DB_PATH", "bot.sqlite3"),
		TestMode: getBool("TEST_MODE", false),
	}

	return cfg
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
