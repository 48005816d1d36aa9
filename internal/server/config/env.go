package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays Config values from environment variables. Combined with
// godotenv in main, this is what deployments normally use; flags win over
// env for local overrides.
//
// Recognized variables: ADDRESS, DATABASE_DSN, SECRET_KEY, TOKEN_VALIDITY
// (Go duration string), SENDGRID_API_KEY, MAIL_FROM_ADDRESS, MAIL_STRICT,
// AVATAR_STORE, S3_ROOT_USER, S3_ROOT_PASSWORD, S3_BUCKET, S3_REGION,
// S3_BASE_ENDPOINT.
func parseEnv(config *Config) {
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		config.SendGridAPIKey = v
	}
	if v := os.Getenv("MAIL_FROM_ADDRESS"); v != "" {
		config.MailFromAddress = v
	}
	if v := os.Getenv("MAIL_STRICT"); v != "" {
		config.MailStrict = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("AVATAR_STORE"); v != "" {
		config.AvatarStore = v
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		config.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		config.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		config.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		config.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		config.S3BaseEndpoint = v
	}
}
