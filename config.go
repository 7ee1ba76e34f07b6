package main

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the process needs. Values come from HIRELINE_*
// environment variables with a .env file as fallback.
type Config struct {
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	DatabaseDSN   string `mapstructure:"DB_DSN"`
	AutoMigrate   bool   `mapstructure:"DB_AUTO_MIGRATE"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Email notifications are disabled when the API key is empty;
	// submissions still succeed.
	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	NotifyFrom   string `mapstructure:"NOTIFY_FROM"`
	NotifyTo     string `mapstructure:"NOTIFY_TO"`

	S3Endpoint      string `mapstructure:"S3_ENDPOINT"`
	S3Region        string `mapstructure:"S3_REGION"`
	S3Bucket        string `mapstructure:"S3_BUCKET"`
	S3AccessKeyID   string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretKey     string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle  bool   `mapstructure:"S3_USE_PATH_STYLE"`
	S3PublicBaseURL string `mapstructure:"S3_PUBLIC_BASE_URL"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("HTTP_ADDR", ":8081")
	viper.SetDefault("DB_DSN", "")
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("NOTIFY_FROM", "Hireline Recruiting <onboarding@resend.dev>")
	viper.SetDefault("NOTIFY_TO", "recruiting@hireline.example")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "application-videos")
	viper.SetDefault("S3_ACCESS_KEY_ID", "")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_USE_PATH_STYLE", false)
	viper.SetDefault("S3_PUBLIC_BASE_URL", "")

	viper.SetEnvPrefix("HIRELINE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetConfigFile(".env")
	// Ignore err if .env doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
