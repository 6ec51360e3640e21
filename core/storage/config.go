package storage

// Config holds configuration for the object storage provider.
type Config struct {
	// Endpoint is the host of the S3-compatible storage service.
	Endpoint string `mapstructure:"endpoint" default:"storage.googleapis.com"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:""`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:""`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"true"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// Project is the deployment project ID. When Bucket is empty the
	// default bucket name is derived from it.
	Project string `mapstructure:"project" default:""`
	// Bucket is the default bucket holding survey photos.
	Bucket string `mapstructure:"bucket" default:""`
	// BucketOverride, when set, takes priority over Bucket and Project.
	BucketOverride string `mapstructure:"bucket_override" default:""`
	// PhotoRoot is the key prefix under which survey photos are stored.
	PhotoRoot string `mapstructure:"photo_root" default:"photos"`
	// PresignWorkers bounds concurrent signed-URL requests per listing.
	PresignWorkers int `mapstructure:"presign_workers" default:"6"`
	// TimeoutSeconds is the per-call network timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Timeout returns the configured per-call timeout with the default applied.
func (c Config) Timeout() int {
	if c.TimeoutSeconds <= 0 {
		return 30
	}
	return c.TimeoutSeconds
}
