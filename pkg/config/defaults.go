package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "guesthouse"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// The portfolio operates on Indian Standard Time. Every "today"
	// computation derives its day boundary from this offset.
	DefaultBusinessTZOffset = 5*time.Hour + 30*time.Minute

	// Dev-only 32-byte key, base64. Production deployments override it.
	DefaultCredentialSealKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

	// MinJWTSecretLength is the shortest signing secret Validate accepts.
	// There is deliberately no default secret; the service refuses to
	// start without one.
	MinJWTSecretLength = 32

	DefaultKafkaBrokers           = "localhost:9092"
	DefaultKafkaNotificationTopic = "booking-notifications"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultLockTTL        = 10 * time.Second

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
