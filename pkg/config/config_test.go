package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		MongoURI:          "mongodb://localhost:27017",
		MongoDatabaseName: "tourism",
		MongoConnTimeout:  time.Second,
		Port:              "8080",
		JWTSecret:         "secret",
		RateLimitRequests: 60,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Hour,
		MaxRequestSize:    1024,
		ReadTimeout:       time.Second,
		WriteTimeout:      time.Second,
		IdleTimeout:       time.Second,
		ShutdownTimeout:   time.Second,
		TimeZone:          "Africa/Casablanca",
		SlotLockTTL:       10 * time.Second,
		MaxBatchDays:      366,
		MaxBatchTemplates: 24,
		MaxBulkBookings:   100,
		requireAuth:       true,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Port = "70000" }, wantErr: "Port"},
		{name: "bad mongo scheme", mutate: func(c *Config) { c.MongoURI = "postgres://localhost" }, wantErr: "MongoURI"},
		{name: "bad redis scheme", mutate: func(c *Config) { c.RedisURL = "localhost:6379" }, wantErr: "RedisURL"},
		{name: "no auth material", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "worker needs no auth", mutate: func(c *Config) { c.JWTSecret = ""; c.requireAuth = false }},
		{name: "bad time zone", mutate: func(c *Config) { c.TimeZone = "Mars/Olympus" }, wantErr: "TimeZone"},
		{name: "zero lock ttl", mutate: func(c *Config) { c.SlotLockTTL = 0 }, wantErr: "SlotLockTTL"},
		{name: "events without topic", mutate: func(c *Config) { c.EventsEnabled = true }, wantErr: "BookingEventsTopic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_SetsLocation(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Loc().String() != "Africa/Casablanca" {
		t.Errorf("Loc() = %s", cfg.Loc())
	}

	var unset *Config
	if unset.Loc() != time.UTC {
		t.Error("nil config should fall back to UTC")
	}
}

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, FallbackPageSize},
		{-5, FallbackPageSize},
		{50, 50},
		{1000, DefaultPaginationLimit},
	}
	for _, tt := range tests {
		if got := NormalizePaginationLimit(tt.in); got != tt.want {
			t.Errorf("NormalizePaginationLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if NormalizeOffset(-3) != 0 {
		t.Error("negative offset should clamp to 0")
	}
}

func TestRedactMongoURI(t *testing.T) {
	got := redactMongoURI("mongodb://admin:hunter2@db:27017")
	if strings.Contains(got, "hunter2") {
		t.Errorf("redactMongoURI() leaked the password: %s", got)
	}
}
