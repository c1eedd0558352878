package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Channel sender credentials.
	SendGridAPIKey   string `mapstructure:"SENDGRID_API_KEY"`
	EmailFrom        string `mapstructure:"EMAIL_FROM"`
	EmailFromName    string `mapstructure:"EMAIL_FROM_NAME"`
	TwilioAccountSID string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `mapstructure:"TWILIO_FROM_NUMBER"`

	// Dispatch executor tuning.
	DispatchRetryMax    int `mapstructure:"DISPATCH_RETRY_MAX"`
	DispatchSendTimeout int `mapstructure:"DISPATCH_SEND_TIMEOUT_SECONDS"`

	// Reminder sweep.
	ReminderWindowHours int    `mapstructure:"REMINDER_WINDOW_HOURS"`
	ReminderSweepCron   string `mapstructure:"REMINDER_SWEEP_CRON"`
	ReminderTemplateID  string `mapstructure:"REMINDER_TEMPLATE_ID"`
	// ReminderKeyStrategy selects how reminder records are keyed:
	// "entity" (one reminder per entity id, ever) or "entity-time"
	// (re-keyed when the event's scheduled time changes).
	ReminderKeyStrategy string `mapstructure:"REMINDER_KEY_STRATEGY"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "courier")
	viper.SetDefault("EMAIL_FROM", "no-reply@courier.local")
	viper.SetDefault("EMAIL_FROM_NAME", "Courier Notifications")
	viper.SetDefault("DISPATCH_RETRY_MAX", 2)
	viper.SetDefault("DISPATCH_SEND_TIMEOUT_SECONDS", 10)
	viper.SetDefault("REMINDER_WINDOW_HOURS", 24)
	viper.SetDefault("REMINDER_SWEEP_CRON", "@every 15m")
	viper.SetDefault("REMINDER_TEMPLATE_ID", "schedule_reminder")
	viper.SetDefault("REMINDER_KEY_STRATEGY", "entity")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
