package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE", "MONGO_URI", "MONGO_DATABASE", "REQUEST_TIMEOUT_SECONDS",
		"LOG_FORMAT", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST", "TRUSTED_PROXIES", "ARCHIVE_BUCKET", "ARCHIVE_REGION"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.Store != StoreMongo || cfg.MongoDatabase != "exercise-tracker" {
		t.Errorf("store: got %q / %q", cfg.Store, cfg.MongoDatabase)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout: got %v", cfg.RequestTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins: got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitBurst != 10 || cfg.TrustedProxies != nil {
		t.Errorf("burst %d, trusted proxies %v", cfg.RateLimitBurst, cfg.TrustedProxies)
	}
	if cfg.RateLimitPerMinute != 0 || cfg.Archive.Bucket != "" || cfg.Archive.Region != "us-east-1" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("STORE", "Memory")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("RATE_LIMIT_BURST", "0")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,192.168.1.1")
	t.Setenv("ARCHIVE_BUCKET", "logs")

	cfg := Load()
	if cfg.Port != "3000" || cfg.Store != StoreMemory {
		t.Errorf("got port %q store %q", cfg.Port, cfg.Store)
	}
	if cfg.RequestTimeout != time.Second {
		t.Errorf("RequestTimeout: got %v, want the 1s floor", cfg.RequestTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSAllowedOrigins: got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.RateLimitBurst != 1 {
		t.Errorf("RateLimitBurst: got %d, want the floor of 1", cfg.RateLimitBurst)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.0/8" {
		t.Errorf("TrustedProxies: got %v", cfg.TrustedProxies)
	}
	if cfg.RateLimitPerMinute != 30 || cfg.Archive.Bucket != "logs" {
		t.Errorf("unexpected: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{Store: StoreMemory}, false},
		{Config{Store: StoreMongo, MongoURI: "mongodb://localhost:27017"}, false},
		{Config{Store: StoreMongo}, true},
		{Config{Store: "redis"}, true},
	}
	for _, tt := range tests {
		if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v): err %v, wantErr %v", tt.cfg, err, tt.wantErr)
		}
	}
}
