package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env             string
	Port            string
	SessionSecret   string
	DatabaseURL     string
	RedisURL        string
	AIGatewayURL    string // OpenAI-compatible chat-completions endpoint
	AIGatewayAPIKey string
	AIModel         string
	HealthAdminKey  string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	gatewayURL := viper.GetString("AI_GATEWAY_URL")
	if gatewayURL == "" {
		gatewayURL = "https://openrouter.ai/api/v1/chat/completions"
	}
	model := viper.GetString("AI_MODEL")
	if model == "" {
		model = "openai/gpt-4o-mini"
	}

	return &Config{
		Env:             env,
		Port:            port,
		SessionSecret:   viper.GetString("SESSION_SECRET"),
		DatabaseURL:     dbURL,
		RedisURL:        viper.GetString("REDIS_URL"),
		AIGatewayURL:    gatewayURL,
		AIGatewayAPIKey: viper.GetString("AI_GATEWAY_API_KEY"),
		AIModel:         model,
		HealthAdminKey:  viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}
