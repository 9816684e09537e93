package carrier

import "errors"

// Config holds configuration for the carrier tracking API integration
type Config struct {
	// APIBaseURL is the base URL of the carrier open API
	APIBaseURL string
	// APIKey is the merchant API key issued by the carrier
	APIKey string
	// MerchantCode identifies the storefront account at the carrier
	MerchantCode string
	// TrackingPath is the tracking lookup endpoint path
	TrackingPath string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// DefaultTrackingPath is the tracking lookup endpoint
	DefaultTrackingPath = "/v1/shipments/track"
	// defaultTimeoutSeconds bounds a carrier call so a hanging connection
	// cannot keep an order's single-flight guard stuck
	defaultTimeoutSeconds = 15
)

// Errors for carrier configuration
var (
	ErrConfigMissingBaseURL      = errors.New("carrier: API base URL is required")
	ErrConfigMissingAPIKey       = errors.New("carrier: API key is required")
	ErrConfigMissingMerchantCode = errors.New("carrier: merchant code is required")
)

// NewConfig creates a carrier configuration with defaults
func NewConfig(baseURL, apiKey, merchantCode string) *Config {
	return &Config{
		APIBaseURL:     baseURL,
		APIKey:         apiKey,
		MerchantCode:   merchantCode,
		TrackingPath:   DefaultTrackingPath,
		TimeoutSeconds: defaultTimeoutSeconds,
	}
}

// Validate validates the carrier configuration and fills defaults
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return ErrConfigMissingBaseURL
	}
	if c.APIKey == "" {
		return ErrConfigMissingAPIKey
	}
	if c.MerchantCode == "" {
		return ErrConfigMissingMerchantCode
	}
	if c.TrackingPath == "" {
		c.TrackingPath = DefaultTrackingPath
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	return nil
}
