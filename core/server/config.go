package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// AdminKey is the secret key for administrative endpoints (purges,
	// hidden-achievement listings). Falls back to ApiKey when empty.
	AdminKey string `mapstructure:"admin_key" default:""`
}

// EffectiveAdminKey returns the admin key, defaulting to the api key.
func (c Config) EffectiveAdminKey() string {
	if c.AdminKey != "" {
		return c.AdminKey
	}
	return c.ApiKey
}
