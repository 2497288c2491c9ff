package config

import (
	"strings"
	"testing"
)

func validTestConfig() *Config {
	prices := map[string]string{}
	for _, key := range requiredPriceKeys {
		prices[key] = "price_" + key
	}
	return &Config{
		Port:                "8080",
		DBHost:              "localhost",
		DBUser:              "postgres",
		DBPassword:          "postgres",
		DBName:              "toptours",
		DBPort:              "5432",
		RedisAddr:           "localhost:6379",
		SupabaseJWTSecret:   "secret",
		StripeSecretKey:     "sk_test_123",
		StripeWebhookSecret: "whsec_123",
		CheckoutSuccessURL:  "https://toptours.ai/checkout/success",
		CheckoutCancelURL:   "https://toptours.ai/checkout/cancel",
		ViatorAPIKey:        "viator-key",
		ViatorBaseURL:       "https://api.viator.com",
		PriceIDs:            prices,
	}
}

func TestConfigValidate(t *testing.T) {
	if err := validTestConfig().Validate(); err != nil {
		t.Fatalf("valid config failed validation: %v", err)
	}
}

func TestConfigValidateMissingRequired(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no jwt secret", func(c *Config) { c.SupabaseJWTSecret = "" }},
		{"no stripe key", func(c *Config) { c.StripeSecretKey = "" }},
		{"non-numeric db port", func(c *Config) { c.DBPort = "not-a-port" }},
		{"success url not a url", func(c *Config) { c.CheckoutSuccessURL = "checkout-success" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}

func TestConfigValidatePriceTableExhaustive(t *testing.T) {
	for _, key := range requiredPriceKeys {
		t.Run(key, func(t *testing.T) {
			cfg := validTestConfig()
			delete(cfg.PriceIDs, key)

			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Validate() accepted a price table missing %q", key)
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error %q does not name the missing key %q", err, key)
			}
		})
	}
}

func TestPriceIDPanicsOnUnknownKey(t *testing.T) {
	cfg := validTestConfig()

	if got := cfg.PriceID(PriceBoostStarter); got != "price_"+PriceBoostStarter {
		t.Errorf("PriceID(%q) = %q", PriceBoostStarter, got)
	}

	defer func() {
		if recover() == nil {
			t.Error("PriceID on an unknown key did not panic")
		}
	}()
	cfg.PriceID("no_such_price")
}
