package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the platform service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	CORSAllowOrigins       string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	JWTSecret              string
	SessionCookieName      string
	SessionTTL             time.Duration
	GoogleClientID         string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	DashboardCacheTTL      time.Duration
	AdminStatsTTL          time.Duration
	AdminRefreshInterval   time.Duration
	OpenAIAPIKey           string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("RCR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "RCR Platform")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.allow_origins", "http://localhost:3000")
	v.SetDefault("session.cookie_name", "rcr_session")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("cloudinary.folder", "rcr/uploads")
	v.SetDefault("dashboard.cache_ttl", "2m")
	v.SetDefault("admin.stats_ttl", "1m")
	v.SetDefault("admin.refresh_interval", "30s")

	sessionTTL, err := parseDuration(v, "session.ttl", "24h")
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	dashboardTTL, err := parseDuration(v, "dashboard.cache_ttl", "2m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	statsTTL, err := parseDuration(v, "admin.stats_ttl", "1m")
	if err != nil {
		return Config{}, fmt.Errorf("invalid admin stats ttl: %w", err)
	}

	refreshInterval, err := parseDuration(v, "admin.refresh_interval", "30s")
	if err != nil {
		return Config{}, fmt.Errorf("invalid admin refresh interval: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		CORSAllowOrigins:       v.GetString("cors.allow_origins"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		SessionCookieName:      v.GetString("session.cookie_name"),
		SessionTTL:             sessionTTL,
		GoogleClientID:         v.GetString("google.client_id"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		DashboardCacheTTL:      dashboardTTL,
		AdminStatsTTL:          statsTTL,
		AdminRefreshInterval:   refreshInterval,
		OpenAIAPIKey:           v.GetString("openai_api_key"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key, fallback string) (time.Duration, error) {
	value := v.GetString(key)
	if value == "" {
		value = fallback
	}
	return time.ParseDuration(value)
}
