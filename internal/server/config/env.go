package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Every variable
// is optional; unset or malformed values leave the current field untouched.
// main loads a .env file first, so these also work for local development.
func parseEnv(config *Config) {
	overlayString(&config.EndpointAddrHTTP, "HTTP_ADDR")
	overlayString(&config.DatabaseDSN, "DATABASE_DSN")
	overlayString(&config.SecretKey, "SECRET_KEY")
	overlayMinutes(&config.AccessTokenValidityDuration, "ACCESS_TOKEN_TTL_MIN")
	overlayMinutes(&config.RefreshTokenValidityDuration, "REFRESH_TOKEN_TTL_MIN")
	overlayInt(&config.BcryptCost, "BCRYPT_COST")
	overlayString(&config.S3RootUser, "S3_ROOT_USER")
	overlayString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	overlayString(&config.S3Bucket, "S3_BUCKET")
	overlayString(&config.S3Region, "S3_REGION")
	overlayString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	overlayString(&config.RedisAddr, "REDIS_ADDR")
	overlayString(&config.AMQPURL, "AMQP_URL")
}

func overlayString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func overlayInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overlayMinutes(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = time.Duration(n) * time.Minute
		}
	}
}
