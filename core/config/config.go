package config

import (
	"reflect"
	"strings"

	"gacha-tracker/core/database"
	"gacha-tracker/core/logger"
	"gacha-tracker/core/server"
	"gacha-tracker/core/storage"
	"gacha-tracker/core/upstream"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TasksConfig holds configuration for the background tasks started alongside
// the server.
type TasksConfig struct {
	// StatsIntervalMinutes is the statistics refresh cadence.
	StatsIntervalMinutes int `mapstructure:"stats_interval_minutes" default:"5"`
	// ReferenceIntervalMinutes is the reference feed sync cadence.
	ReferenceIntervalMinutes int `mapstructure:"reference_interval_minutes" default:"10"`
	// ReferenceSyncEnabled toggles the reference sync task.
	ReferenceSyncEnabled bool `mapstructure:"reference_sync_enabled" default:"true"`
}

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Upstream holds configuration for the third-party provider client.
	Upstream upstream.Config `mapstructure:"upstream"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Tasks holds configuration for the background tasks.
	Tasks TasksConfig `mapstructure:"tasks"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SERVER_PORT -> server.port)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values
// in Viper based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// Nested structs recurse with their key as the prefix.
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set the default (even if empty) to register the key for
		// AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
