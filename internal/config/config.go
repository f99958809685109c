package config

import (
	"errors"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Timeouts are in seconds.
	RequestTimeout int `mapstructure:"REQUEST_TIMEOUT"`
	FetchTimeout   int `mapstructure:"FETCH_TIMEOUT"`
	ImageTimeout   int `mapstructure:"IMAGE_TIMEOUT"`

	// Resource bounds for one extraction.
	MaxImageCandidates int `mapstructure:"MAX_IMAGE_CANDIDATES"`
	MaxImageEvidence   int `mapstructure:"MAX_IMAGE_EVIDENCE"`
	MaxMinedTextChars  int `mapstructure:"MAX_MINED_TEXT_CHARS"`
	MaxPromptTextChars int `mapstructure:"MAX_PROMPT_TEXT_CHARS"`

	// ImageBlacklist holds URL substrings that mark a candidate as a
	// non-product asset (icons, logos, payment badges...). Tunable data,
	// not code.
	ImageBlacklist []string `mapstructure:"IMAGE_BLACKLIST"`

	// Target market for the generated copy.
	TargetLanguage string `mapstructure:"TARGET_LANGUAGE"`
	TargetCurrency string `mapstructure:"TARGET_CURRENCY"`
	CurrencyHints  string `mapstructure:"CURRENCY_HINTS"`
}

// ErrMissingAPIKey is returned when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is required")

// DefaultImageBlacklist is the stock token table marking non-product assets.
var DefaultImageBlacklist = []string{
	"icon", "logo", "avatar", "button", "banner", "ad", "shipping",
	"delivery", "trust", "badge", "payment", "cart", "app-download",
	"flag", "sprite", "loading",
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = viper.ReadInConfig()

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	viper.SetDefault("REQUEST_TIMEOUT", 90) // in seconds
	viper.SetDefault("FETCH_TIMEOUT", 20)
	viper.SetDefault("IMAGE_TIMEOUT", 10)
	viper.SetDefault("MAX_IMAGE_CANDIDATES", 30)
	viper.SetDefault("MAX_IMAGE_EVIDENCE", 5)
	viper.SetDefault("MAX_MINED_TEXT_CHARS", 15000)
	viper.SetDefault("MAX_PROMPT_TEXT_CHARS", 5000)
	viper.SetDefault("IMAGE_BLACKLIST", DefaultImageBlacklist)
	viper.SetDefault("TARGET_LANGUAGE", "Arabic")
	viper.SetDefault("TARGET_CURRENCY", "MAD")
	viper.SetDefault("CURRENCY_HINTS", "Assume 1 USD = 10 MAD, 1 EUR = 11 MAD approx.")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &cfg, nil
}
