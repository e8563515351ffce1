package config

import (
	"encoding/json"
	"os"

	"github.com/privafile/privafile/internal/flagx"
	"github.com/privafile/privafile/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files. It uses
// timex.Duration so the token lifetime can be given either as a string
// ("24h") or as integer nanoseconds. After unmarshalling, its fields are
// copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr   string         `json:"endpoint_addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	TokenKeyPath   string         `json:"token_key_path"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	UploadsDir     string         `json:"uploads_dir"`
	BlobBackend    string         `json:"blob_backend"`
	S3RootUser     string         `json:"s3_root_user"`
	S3RootPassword string         `json:"s3_root_password"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config flag. If no flag is set, nothing is loaded. A file that
// cannot be read or parsed is a startup error, so the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.TokenKeyPath = c.TokenKeyPath
	config.TokenTTL = c.TokenTTL.Duration
	config.UploadsDir = c.UploadsDir
	config.BlobBackend = c.BlobBackend
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
