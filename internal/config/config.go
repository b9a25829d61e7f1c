package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // minutes
	MaxRetries      int    `mapstructure:"max_retries"`
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers       []string      `mapstructure:"brokers"`
	DecisionTopic string        `mapstructure:"decision_topic"`
	ConsumerGroup string        `mapstructure:"consumer_group"`
	PollInterval  time.Duration `mapstructure:"poll_interval"`
	// HandleAttempts bounds in-place retries of a failing decision message.
	HandleAttempts int           `mapstructure:"handle_attempts"`
	HandleBackoff  time.Duration `mapstructure:"handle_backoff"`
}

type AuthConfig struct {
	SessionSecret   string        `mapstructure:"session_secret"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	CookieName      string        `mapstructure:"cookie_name"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`
	LoginRatePerMin int           `mapstructure:"login_rate_per_min"`
	LoginBurst      int           `mapstructure:"login_burst"`
}

type StorageConfig struct {
	Root          string `mapstructure:"root"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"` // bytes
}

type AdminConfig struct {
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
	FirstName string `mapstructure:"first_name"`
	LastName  string `mapstructure:"last_name"`
	Phone     string `mapstructure:"phone"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration with precedence env > config file > defaults.
// Environment variables use the WORKTRACK_ prefix, e.g. WORKTRACK_DB_HOST.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "worktrack")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.max_retries", 5)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.decision_topic", "worktrack.approval.decided.v1")
	v.SetDefault("kafka.consumer_group", "worktrack-notifications")
	v.SetDefault("kafka.poll_interval", "3s")
	v.SetDefault("kafka.handle_attempts", 5)
	v.SetDefault("kafka.handle_backoff", "500ms")

	v.SetDefault("auth.session_ttl", "12h")
	v.SetDefault("auth.cookie_name", "wt_session")
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.login_rate_per_min", 10)
	v.SetDefault("auth.login_burst", 5)

	v.SetDefault("storage.root", "./uploads")
	v.SetDefault("storage.max_upload_size", 10<<20)

	v.SetDefault("admin.email", "admin@company.com")
	v.SetDefault("admin.password", "admin123")
	v.SetDefault("admin.first_name", "Admin")
	v.SetDefault("admin.last_name", "User")
	v.SetDefault("admin.phone", "0000000000")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("WORKTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Auth.SessionSecret == "" {
		return errors.New("auth.session_secret is required")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	if c.Storage.Root == "" {
		return errors.New("storage.root is required")
	}
	return nil
}
