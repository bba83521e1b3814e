package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		MongoURI:          DefaultMongoURI,
		MongoDatabaseName: DefaultMongoDatabaseName,
		MongoConnTimeout:  DefaultMongoConnTimeout,

		Port: DefaultPort,

		JWTSecret:         strings.Repeat("s", MinJWTSecretLength),
		CredentialSealKey: DefaultCredentialSealKey,

		BusinessTZOffset: DefaultBusinessTZOffset,

		KafkaBrokers:           []string{"localhost:9092"},
		KafkaNotificationTopic: DefaultKafkaNotificationTopic,

		RateLimitRequests: DefaultRateLimitRequests,
		RateLimitWindow:   DefaultRateLimitWindow,

		RequestTimeout: DefaultRequestTimeout,
		MaxRequestSize: DefaultMaxRequestSize,
		LockTTL:        DefaultLockTTL,

		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate_JWTSecretRequired(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("an empty JWT secret must fail validation")
	}
	if !strings.Contains(err.Error(), "JWTSecret") {
		t.Errorf("error must name JWTSecret, got %v", err)
	}
}

func TestValidate_JWTSecretMinLength(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = "short"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("a short JWT secret must fail validation")
	}
	if !strings.Contains(err.Error(), "JWTSecret") {
		t.Errorf("error must name JWTSecret, got %v", err)
	}
}

func TestValidate_CredentialSealKeyRequired(t *testing.T) {
	cfg := validConfig()
	cfg.CredentialSealKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("an empty credential seal key must fail validation")
	}
}

func TestValidate_BusinessTZOffsetBounds(t *testing.T) {
	cfg := validConfig()
	cfg.BusinessTZOffset = 24 * time.Hour
	if err := cfg.Validate(); err == nil {
		t.Error("an offset of a full day must fail validation")
	}

	cfg.BusinessTZOffset = -5*time.Hour - 30*time.Minute
	if err := cfg.Validate(); err != nil {
		t.Errorf("a negative in-range offset must validate, got %v", err)
	}
}
