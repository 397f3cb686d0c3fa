package config

import (
	"os"
	"strings"
)

// Config carries all environment-driven settings. The .env file is loaded by
// main before Load runs.
type Config struct {
	Port            string
	GinMode         string
	ProjectID       string
	CredentialsFile string
	WSTicketSecret  string
	AllowedOrigins  []string
}

func Load() Config {
	cfg := Config{
		Port:            getenv("PORT", "8080"),
		GinMode:         getenv("GIN_MODE", "debug"),
		ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		WSTicketSecret:  getenv("WS_TICKET_SECRET", "dev-ws-ticket-secret"),
	}

	origins := getenv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
