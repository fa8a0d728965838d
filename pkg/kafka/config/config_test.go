package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Brokers:                   []string{"localhost:9092"},
		ClientID:                  "bookings",
		DialTimeout:               5 * time.Second,
		ProducerMaxAttempts:       3,
		ProducerBatchTimeout:      10 * time.Millisecond,
		ProducerRequireAcks:       -1,
		ProducerCompression:       "snappy",
		ConsumerStartOffset:       -2,
		ConsumerMinBytes:          1,
		ConsumerMaxBytes:          1024,
		ConsumerMaxWait:           time.Second,
		ConsumerHeartbeatInterval: time.Second,
		ConsumerSessionTimeout:    10 * time.Second,
		ConsumerRebalanceTimeout:  time.Minute,
		ConsumerMaxRetries:        3,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no brokers", mutate: func(c *Config) { c.Brokers = nil }, wantErr: "broker"},
		{name: "blank client id", mutate: func(c *Config) { c.ClientID = "  " }, wantErr: "ClientID"},
		{name: "zero dial timeout", mutate: func(c *Config) { c.DialTimeout = 0 }, wantErr: "DialTimeout"},
		{name: "bad compression", mutate: func(c *Config) { c.ProducerCompression = "brotli" }, wantErr: "ProducerCompression"},
		{name: "bad acks", mutate: func(c *Config) { c.ProducerRequireAcks = 2 }, wantErr: "ProducerRequireAcks"},
		{name: "bad offset", mutate: func(c *Config) { c.ConsumerStartOffset = 5 }, wantErr: "ConsumerStartOffset"},
		{name: "negative retries", mutate: func(c *Config) { c.ConsumerMaxRetries = -1 }, wantErr: "ConsumerMaxRetries"},
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

func TestSplitBrokers(t *testing.T) {
	got := splitBrokers(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Errorf("splitBrokers() = %v", got)
	}
}
