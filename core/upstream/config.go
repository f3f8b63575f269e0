package upstream

// Config holds configuration for the third-party provider client.
type Config struct {
	// BaseURL is the root URL of the provider API.
	BaseURL string `mapstructure:"base_url" default:"https://api.gacha-proxy.example"`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
	// RetryMaxElapsedSeconds bounds the total retry window for one fetch.
	// Zero disables retries entirely (useful in tests).
	RetryMaxElapsedSeconds int `mapstructure:"retry_max_elapsed_seconds" default:"30"`
}
