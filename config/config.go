package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the checkout service.
type Config struct {
	Port   string
	AppEnv string

	// Payment gateway (sticky.io-style order API)
	GatewayURL      string
	GatewayUsername string
	GatewayPassword string
	GatewayTimeout  time.Duration
	GatewayTestMode bool

	// Shared secret for webhook signature verification (optional)
	WebhookSecret string

	// Outbound email (optional, used by fulfillment notifications)
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

// LoadConfig reads configuration from environment variables. Gateway
// credentials are deliberately optional: without them the service runs
// against a simulated gateway so the demo stays usable locally.
func LoadConfig() *Config {
	timeoutSecs, err := strconv.Atoi(getEnv("GATEWAY_TIMEOUT_SECONDS", "15"))
	if err != nil || timeoutSecs <= 0 {
		timeoutSecs = 15
	}

	return &Config{
		Port:            getEnv("PORT", "8093"),
		AppEnv:          getEnv("APP_ENV", "development"),
		GatewayURL:      getEnv("GATEWAY_API_URL", "https://boostninja.sticky.io/api/v1"),
		GatewayUsername: os.Getenv("GATEWAY_API_USERNAME"),
		GatewayPassword: os.Getenv("GATEWAY_API_PASSWORD"),
		GatewayTimeout:  time.Duration(timeoutSecs) * time.Second,
		GatewayTestMode: getEnv("GATEWAY_TEST_MODE", "true") == "true",
		WebhookSecret:   os.Getenv("GATEWAY_WEBHOOK_SECRET"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        getEnv("SMTP_PORT", "587"),
		SMTPUser:        os.Getenv("SMTP_USER"),
		SMTPPass:        os.Getenv("SMTP_PASS"),
	}
}

// HasGatewayCredentials reports whether live gateway calls are possible.
func (c *Config) HasGatewayCredentials() bool {
	return c.GatewayUsername != "" && c.GatewayPassword != ""
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
