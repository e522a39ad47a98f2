package api

import (
	"fmt"
	"os"
	"strings"
)

// Config carries environment-driven settings for the webhook process.
// All credentials are injected here; nothing is hardcoded downstream.
type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	// PublicBaseURL is the externally reachable prefix (e.g. a tunnel
	// URL) under which receipts are served.
	PublicBaseURL string
	ReceiptDir    string

	MapsAPIKey  string
	MapsBaseURL string

	WhatsAppPhone    string
	CallMeBotAPIKey  string
	CallMeBotBaseURL string
}

// LoadConfig reads environment variables, applies defaults, and validates
// basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:             envDefault("PORT", "8080"),
		MongoURI:         strings.TrimSpace(os.Getenv("MONGO_URI")),
		MongoDatabase:    envDefault("MONGO_DATABASE", "livraison_db"),
		PublicBaseURL:    strings.TrimSuffix(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/"),
		ReceiptDir:       envDefault("RECEIPT_DIR", "./pdf"),
		MapsAPIKey:       strings.TrimSpace(os.Getenv("MAPS_API_KEY")),
		MapsBaseURL:      strings.TrimSpace(os.Getenv("MAPS_BASE_URL")),
		WhatsAppPhone:    strings.TrimSpace(os.Getenv("WHATSAPP_PHONE")),
		CallMeBotAPIKey:  strings.TrimSpace(os.Getenv("CALLMEBOT_API_KEY")),
		CallMeBotBaseURL: strings.TrimSpace(os.Getenv("CALLMEBOT_BASE_URL")),
	}
	if cfg.MapsAPIKey == "" {
		return Config{}, fmt.Errorf("MAPS_API_KEY is required")
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.Port
	}
	return cfg, nil
}

// NotificationsConfigured reports whether the CallMeBot credentials are
// complete. When they are not, confirmations still work but no WhatsApp
// message goes out.
func (c Config) NotificationsConfigured() bool {
	return c.WhatsAppPhone != "" && c.CallMeBotAPIKey != ""
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
