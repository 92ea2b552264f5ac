package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	JWTSecret string
	RateLimit RateLimit
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// RateLimit selects the submission throttle backend. "memory" serves a
// single process; "redis" shares counters across instances.
type RateLimit struct {
	Backend       string
	RedisAddr     string
	RedisPassword string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_BACKEND", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWTSecret = viper.GetString("JWT_SECRET")
	config.RateLimit.Backend = viper.GetString("RATE_LIMIT_BACKEND")
	config.RateLimit.RedisAddr = viper.GetString("REDIS_ADDR")
	config.RateLimit.RedisPassword = viper.GetString("REDIS_PASSWORD")

	log.Info().
		Str("server_port", config.Server.Port).
		Str("database_host", config.Database.Host).
		Str("database_name", config.Database.Name).
		Str("rate_limit_backend", config.RateLimit.Backend).
		Msg("Config loaded")
	return &config, nil
}
