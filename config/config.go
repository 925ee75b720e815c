package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Document store.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis, used only for the advisory dispatch lease.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisLeaseDB  int    `mapstructure:"REDIS_LEASE_DB"`

	// Outbound mail.
	AWSRegion      string  `mapstructure:"AWS_REGION"`
	MailSender     string  `mapstructure:"MAIL_SENDER"`
	MailSendPerSec float64 `mapstructure:"MAIL_SEND_PER_SEC"`
	MailSendBurst  int     `mapstructure:"MAIL_SEND_BURST"`

	// Dispatching.
	DispatchCron      string `mapstructure:"DISPATCH_CRON"`
	MetricsCron       string `mapstructure:"METRICS_CRON"`
	TickTimeoutSec    int    `mapstructure:"TICK_TIMEOUT_SEC"`
	ClaimStalenessMin int    `mapstructure:"CLAIM_STALENESS_MIN"`
	DisplayTimezone   string `mapstructure:"DISPLAY_TIMEZONE"`

	// Deep links in notification e-mails.
	AppBaseURL string `mapstructure:"APP_BASE_URL"`

	// Producer API auth.
	JWTSecret string `mapstructure:"JWT_SECRET"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "transport_platform")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LEASE_DB", 3)
	viper.SetDefault("AWS_REGION", "eu-central-1")
	viper.SetDefault("MAIL_SENDER", "notifikacie@transport-platform.sk")
	viper.SetDefault("MAIL_SEND_PER_SEC", 10.0)
	viper.SetDefault("MAIL_SEND_BURST", 5)
	viper.SetDefault("DISPATCH_CRON", "* * * * *")
	viper.SetDefault("METRICS_CRON", "0 * * * *")
	viper.SetDefault("TICK_TIMEOUT_SEC", 55)
	viper.SetDefault("CLAIM_STALENESS_MIN", 5)
	viper.SetDefault("DISPLAY_TIMEZONE", "Europe/Bratislava")
	viper.SetDefault("APP_BASE_URL", "https://app.transport-platform.sk")
	viper.SetDefault("JWT_SECRET", "")

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

// TickTimeout returns the per-invocation deadline for a dispatch tick.
func TickTimeout() time.Duration {
	return time.Duration(AppConfig.TickTimeoutSec) * time.Second
}

// ClaimStaleness returns the window after which a claim without a
// finalization is treated as abandoned and reclaimable.
func ClaimStaleness() time.Duration {
	return time.Duration(AppConfig.ClaimStalenessMin) * time.Minute
}

// DisplayLocation loads the timezone used for e-mail date formatting and
// cron scheduling. Falls back to UTC if the configured zone is unknown.
func DisplayLocation() *time.Location {
	loc, err := time.LoadLocation(AppConfig.DisplayTimezone)
	if err != nil {
		log.Printf("Unknown DISPLAY_TIMEZONE %q, falling back to UTC", AppConfig.DisplayTimezone)
		return time.UTC
	}
	return loc
}
