package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Default trusted domains, walked in this order by the source finder.
// The list is curated: government press portals, health organizations,
// and established fact-checking outlets.
var defaultTrustedDomains = []string{
	"https://pib.gov.in/PressReleasePage.aspx",
	"https://www.factcheck.pib.gov.in/",
	"https://www.who.int/",
	"https://www.unicef.org/",
	"https://www.reuters.com/",
	"https://www.altnews.in/",
	"https://www.boomlive.in/",
	"https://wikipedia.org/",
}

// Config holds all process-wide settings. It is built once at startup
// and passed into component constructors; nothing reads the environment
// after Load returns.
type Config struct {
	GeminiAPIKey string
	GeminiModel  string
	Port         string
	DatabaseURL  string

	TrustedDomains []string
	SearchLimit    int
	SearchTimeout  time.Duration
	FetchTimeout   time.Duration
	MaxSourceChars int
	PreviewChars   int
}

// trustedSourcesFile is the shape of the optional YAML override file
type trustedSourcesFile struct {
	Domains []string `yaml:"domains"`
}

// Load builds a Config from environment variables, applying defaults.
// TRUSTED_SOURCES_FILE may point at a YAML file overriding the built-in
// trusted-domain list.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOr("GEMINI_MODEL", "gemini-1.5-flash"),
		Port:           envOr("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		TrustedDomains: defaultTrustedDomains,
		SearchLimit:    4,
		SearchTimeout:  10 * time.Second,
		FetchTimeout:   15 * time.Second,
		MaxSourceChars: 40000,
		PreviewChars:   1200,
	}

	if v := os.Getenv("SEARCH_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			return nil, fmt.Errorf("invalid SEARCH_LIMIT %q", v)
		}
		cfg.SearchLimit = limit
	}

	if path := os.Getenv("TRUSTED_SOURCES_FILE"); path != "" {
		domains, err := loadTrustedDomains(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load trusted sources file: %w", err)
		}
		cfg.TrustedDomains = domains
	}

	return cfg, nil
}

func loadTrustedDomains(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file trustedSourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Domains) == 0 {
		return nil, fmt.Errorf("%s lists no domains", path)
	}
	return file.Domains, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
