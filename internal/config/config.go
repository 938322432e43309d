package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr           string
	FirestoreProjectID string
	ShutdownTimeout    time.Duration
	CORSOrigins        []string

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string

	TaxRateBps          int64
	DeliveryFeeCents    int64
	FreeDeliveryAtCents int64
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		FirestoreProjectID: envOrDefault("FIRESTORE_PROJECT_ID", "bakeshop-dev"),
		ShutdownTimeout:    envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
		CORSOrigins:        envList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       envOrDefault("MAIL_FROM", "orders@bakeshop.example"),
		MailFromName:   envOrDefault("MAIL_FROM_NAME", "Bakeshop"),

		TaxRateBps:          envInt64("TAX_RATE_BPS", 800),
		DeliveryFeeCents:    envInt64("DELIVERY_FEE_CENTS", 500),
		FreeDeliveryAtCents: envInt64("FREE_DELIVERY_AT_CENTS", 5000),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return n
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
