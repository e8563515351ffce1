package config

import (
	"os"
	"time"
)

// parseEnv overlays Config fields from PRIVAFILE_* environment variables.
// Unset variables leave the current value untouched. Pair with godotenv to
// keep a local .env during development.
func parseEnv(config *Config) {
	setString := func(key string, target *string) {
		if v, ok := os.LookupEnv(key); ok {
			*target = v
		}
	}

	setString("PRIVAFILE_ENDPOINT_ADDR", &config.EndpointAddr)
	setString("PRIVAFILE_DATABASE_DSN", &config.DatabaseDSN)
	setString("PRIVAFILE_TOKEN_KEY_PATH", &config.TokenKeyPath)
	setString("PRIVAFILE_UPLOADS_DIR", &config.UploadsDir)
	setString("PRIVAFILE_BLOB_BACKEND", &config.BlobBackend)
	setString("PRIVAFILE_S3_ROOT_USER", &config.S3RootUser)
	setString("PRIVAFILE_S3_ROOT_PASSWORD", &config.S3RootPassword)
	setString("PRIVAFILE_S3_BUCKET", &config.S3Bucket)
	setString("PRIVAFILE_S3_REGION", &config.S3Region)
	setString("PRIVAFILE_S3_BASE_ENDPOINT", &config.S3BaseEndpoint)

	if v, ok := os.LookupEnv("PRIVAFILE_TOKEN_TTL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenTTL = d
		}
	}
}
