package config

import (
	"encoding/json"
	"os"

	"github.com/atfurman/taskapp/internal/flagx"
	"github.com/atfurman/taskapp/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which accepts both
// string values such as "720h" and integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	SendGridAPIKey        string         `json:"sendgrid_api_key"`
	MailFromAddress       string         `json:"mail_from_address"`
	MailStrict            bool           `json:"mail_strict"`
	AvatarStore           string         `json:"avatar_store"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration from the JSON file named by the -c/-config
// flag, if any. Missing flag means no JSON overlay. A file that cannot be
// read or parsed panics: a config file that is present but broken should
// stop the process.
func parseJson(config *Config) {

	fileName := flagx.JsonConfigFlags()
	if fileName == "" {
		return
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		panic(err)
	}

	jc := &JsonConfig{}
	if err := json.Unmarshal(data, jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		config.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		config.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		config.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.SendGridAPIKey != "" {
		config.SendGridAPIKey = jc.SendGridAPIKey
	}
	if jc.MailFromAddress != "" {
		config.MailFromAddress = jc.MailFromAddress
	}
	if jc.MailStrict {
		config.MailStrict = true
	}
	if jc.AvatarStore != "" {
		config.AvatarStore = jc.AvatarStore
	}
	if jc.S3RootUser != "" {
		config.S3RootUser = jc.S3RootUser
	}
	if jc.S3RootPassword != "" {
		config.S3RootPassword = jc.S3RootPassword
	}
	if jc.S3Bucket != "" {
		config.S3Bucket = jc.S3Bucket
	}
	if jc.S3Region != "" {
		config.S3Region = jc.S3Region
	}
	if jc.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = jc.S3BaseEndpoint
	}
}
