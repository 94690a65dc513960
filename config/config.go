package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// BillingCodeAlphabet is the deferred-payment code alphabet: digits and
// uppercase letters minus the visually ambiguous 0, O, 1, I.
const BillingCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL          string
	RedisAddress   string
	BearerToken    string
	BillingCodeTTL time.Duration
	BillingCodeLen int
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}

// LoadBillingCodeTTL reads the billing-code lifetime from the environment,
// defaulting to 3 days.
func LoadBillingCodeTTL() time.Duration {
	if value, exists := os.LookupEnv("BILLING_CODE_TTL"); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: Invalid duration value for BILLING_CODE_TTL, using default: 72h")
	}
	return 72 * time.Hour
}

// LoadBillingCodeLen reads the billing-code length from the environment,
// defaulting to 8 characters.
func LoadBillingCodeLen() int {
	if value, exists := os.LookupEnv("BILLING_CODE_LEN"); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: Invalid integer value for BILLING_CODE_LEN, using default: 8")
	}
	return 8
}
