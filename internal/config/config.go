package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	AI        AIConfig        `mapstructure:"ai"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Tasks     TasksConfig     `mapstructure:"tasks"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Loyalty   LoyaltyConfig   `mapstructure:"loyalty"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	LogLevel        string        `mapstructure:"log_level"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxIdle      int    `mapstructure:"max_idle"`
	MaxOpen      int    `mapstructure:"max_open"`
	LogLevel     string `mapstructure:"log_level"`
	FutureMonths int    `mapstructure:"future_months"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	AccessTTL  time.Duration `mapstructure:"access_ttl"`
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`
	Issuer     string        `mapstructure:"issuer"`
}

type StorageConfig struct {
	Provider  string `mapstructure:"provider"` // s3 | local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	CDNDomain string `mapstructure:"cdn_domain"`
	BasePath  string `mapstructure:"base_path"`
	BaseURL   string `mapstructure:"base_url"`
}

type AIConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	Model        string `mapstructure:"model"`
}

type NotifyConfig struct {
	WebhookURL          string `mapstructure:"webhook_url"`
	SMSGatewayURL       string `mapstructure:"sms_gateway_url"`
	SMSAPIKey           string `mapstructure:"sms_api_key"`
	FirebaseCredentials string `mapstructure:"firebase_credentials"`
	MaxAttempts         int    `mapstructure:"max_attempts"`
	BatchSize           int    `mapstructure:"batch_size"`
	Concurrency         int    `mapstructure:"concurrency"`
}

type TasksConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	ExpiryDays         int    `mapstructure:"expiry_days"`
	ReminderHoursAhead int    `mapstructure:"reminder_hours_ahead"`
	ExpirySpec         string `mapstructure:"expiry_spec"`
	ReminderSpec       string `mapstructure:"reminder_spec"`
	DispatchSpec       string `mapstructure:"dispatch_spec"`
	PartitionSpec      string `mapstructure:"partition_spec"`
	CartCleanupSpec    string `mapstructure:"cart_cleanup_spec"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	ServiceName  string `mapstructure:"service_name"`
	Insecure     bool   `mapstructure:"insecure"`
}

type LoyaltyConfig struct {
	CentsPerPoint   int64 `mapstructure:"cents_per_point"`
	PointValueCents int64 `mapstructure:"point_value_cents"`
	SilverThreshold int64 `mapstructure:"silver_threshold"`
	GoldThreshold   int64 `mapstructure:"gold_threshold"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=pharmacy port=5432 sslmode=disable TimeZone=UTC")
	v.SetDefault("database.max_idle", 10)
	v.SetDefault("database.max_open", 100)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("database.future_months", 3)

	v.SetDefault("jwt.secret", "change-me")
	v.SetDefault("jwt.access_ttl", 2*time.Hour)
	v.SetDefault("jwt.refresh_ttl", 7*24*time.Hour)
	v.SetDefault("jwt.issuer", "pharmacy-erp")

	v.SetDefault("storage.provider", "local")
	v.SetDefault("storage.base_path", "./uploads")
	v.SetDefault("storage.base_url", "/uploads")
	v.SetDefault("storage.region", "eu-west-3")

	v.SetDefault("ai.model", "gemini-1.5-flash")

	v.SetDefault("notify.max_attempts", 5)
	v.SetDefault("notify.batch_size", 100)
	v.SetDefault("notify.concurrency", 8)

	v.SetDefault("tasks.enabled", true)
	v.SetDefault("tasks.expiry_days", 30)
	v.SetDefault("tasks.reminder_hours_ahead", 24)
	v.SetDefault("tasks.expiry_spec", "0 0 6 * * *")
	v.SetDefault("tasks.reminder_spec", "0 0/15 * * * *")
	v.SetDefault("tasks.dispatch_spec", "0 * * * * *")
	v.SetDefault("tasks.partition_spec", "0 30 3 * * *")
	v.SetDefault("tasks.cart_cleanup_spec", "0 0 * * * *")

	v.SetDefault("telemetry.service_name", "pharmacy-erp")

	v.SetDefault("loyalty.cents_per_point", 100)
	v.SetDefault("loyalty.point_value_cents", 5)
	v.SetDefault("loyalty.silver_threshold", 500)
	v.SetDefault("loyalty.gold_threshold", 2000)
}

// Load 读取 .env、config.yaml 与 PHARMA_ 前缀环境变量
// 配置文件不存在不视为错误
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("PHARMA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
