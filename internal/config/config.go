package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env" validate:"oneof=development staging production test"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port" validate:"required"`
	Mode         string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	Driver     string `mapstructure:"driver" validate:"oneof=postgres sqlite"`
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	Path       string `mapstructure:"path"`
	LogMode    bool   `mapstructure:"log_mode"`
	MaxRetries int    `mapstructure:"max_retries" validate:"min=1"`
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	MaxRetries int    `mapstructure:"max_retries"`
}

type KafkaConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Broker  string `mapstructure:"broker"`
	Topic   string `mapstructure:"topic"`
}

// ListaFirmeConfig configures the outbound registry client. An empty APIKey
// means the client is not configured.
type ListaFirmeConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url" validate:"required,url"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	OpenTimeout time.Duration `mapstructure:"open_timeout" validate:"gt=0"`
	TestCUI     string        `mapstructure:"test_cui" validate:"omitempty,number"`
	DemoMode    bool          `mapstructure:"demo_mode"`
	UserAgent   string        `mapstructure:"user_agent" validate:"required"`
}

type RetentionConfig struct {
	Days     int           `mapstructure:"days" validate:"min=1"`
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
}

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	ListaFirme ListaFirmeConfig `mapstructure:"listafirme"`
	Retention  RetentionConfig  `mapstructure:"retention"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-firme")
	v.SetDefault("app.env", "development")

	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", "5s")
	// a lookup may take the full provider timeout
	v.SetDefault("server.write_timeout", "45s")
	v.SetDefault("server.idle_timeout", "60s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "firme")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "firme.db")
	v.SetDefault("database.log_mode", false)
	v.SetDefault("database.max_retries", 5)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.max_retries", 5)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.broker", "localhost:9092")
	v.SetDefault("kafka.topic", "api-log.recorded")

	v.SetDefault("listafirme.api_key", "")
	v.SetDefault("listafirme.base_url", "https://www.listafirme.ro/api")
	v.SetDefault("listafirme.timeout", "30s")
	v.SetDefault("listafirme.open_timeout", "10s")
	v.SetDefault("listafirme.test_cui", "14837428")
	v.SetDefault("listafirme.demo_mode", false)
	v.SetDefault("listafirme.user_agent", "go-firme/1.0")

	v.SetDefault("retention.days", 30)
	v.SetDefault("retention.interval", "24h")
}

// Load reads path (or ./config.yaml when path is empty) and applies
// FIRME_* environment overrides, e.g. FIRME_LISTAFIRME_API_KEY. A missing
// config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("FIRME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}
