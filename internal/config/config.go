package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode string `mapstructure:"mode"`
	Port int    `mapstructure:"port"`

	Provider string `mapstructure:"provider"`
	Store    string `mapstructure:"store"`

	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`

	RoomIDLength     int           `mapstructure:"room_id_length"`
	CreateMaxRetries int           `mapstructure:"create_max_retries"`
	CleanupInterval  time.Duration `mapstructure:"cleanup_interval"`

	ReconcileInterval time.Duration `mapstructure:"reconcile_interval"`
	GracePeriod       time.Duration `mapstructure:"grace_period"`
	HealthTimeout     time.Duration `mapstructure:"health_timeout"`
	HealthParallelism int           `mapstructure:"health_parallelism"`

	RoomImage    string `mapstructure:"room_image"`
	RoomPort     int    `mapstructure:"room_port"`
	RoomHostname string `mapstructure:"room_hostname"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("provider", "docker")
	v.SetDefault("store", "mongo")
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "quizrooms")
	v.SetDefault("room_id_length", 6)
	v.SetDefault("create_max_retries", 16)
	v.SetDefault("cleanup_interval", "30s")
	v.SetDefault("reconcile_interval", "15s")
	v.SetDefault("grace_period", "60s")
	v.SetDefault("health_timeout", "5s")
	v.SetDefault("health_parallelism", 8)
	v.SetDefault("room_image", "quizhive/room-runtime:latest")
	v.SetDefault("room_port", 3000)
	v.SetDefault("room_hostname", "localhost")

	// Deployment overrides come from the environment, e.g. ROOM_PROVIDER.
	v.SetEnvPrefix("room")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("config file not found (%s), using defaults\n", fileName)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
