package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Logging         LoggingConfig        `mapstructure:"logging"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	Cache           CacheConfig          `mapstructure:"cache"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	Scheduler       SchedulerConfig      `mapstructure:"scheduler"`
	AWS             AWSConfig            `mapstructure:"aws"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType   `mapstructure:"type"`
	Port           string        `mapstructure:"port"`
	SelfURL        string        `mapstructure:"selfUrl"`
	RequestTimeout time.Duration `mapstructure:"requestTimeout"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	WriteTimeout   time.Duration `mapstructure:"writeTimeout"`
	AllowedOrigins []string      `mapstructure:"allowedOrigins"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
	AutoMigrate      bool   `mapstructure:"autoMigrate"`
	PasswordSecretID string `mapstructure:"passwordSecretId"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

type CacheConfig struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Prefix string        `mapstructure:"prefix"`
}

type ExternalClientConfig struct {
	Seed SeedConfig `mapstructure:"seed"`
}

type SeedConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetries    uint64        `mapstructure:"maxRetries"`
	RetryInterval time.Duration `mapstructure:"retryInterval"`
}

type SchedulerConfig struct {
	ReseedCron string `mapstructure:"reseedCron"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const envPrefix = "SALESBOARD"

// SeedMaxRetryInterval caps the backoff wait between seed fetch attempts.
const SeedMaxRetryInterval = 5 * time.Second

// LoadConfig reads appsettings.yaml from path and, when env is set, merges
// appsettings.<env>.yaml on top of it. Every key can be overridden with a
// SALESBOARD_<SECTION>_<KEY> environment variable.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if env != "" {
		v.SetConfigName("appsettings." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("merge %s config: %w", env, err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Service.SelfURL == "" {
		cfg.Service.SelfURL = "http://localhost:" + cfg.Service.Port
	}
	cfg.Service.SelfURL = strings.TrimRight(cfg.Service.SelfURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.selfUrl", "")
	v.SetDefault("service.requestTimeout", 10*time.Second)
	v.SetDefault("service.readTimeout", 30*time.Second)
	v.SetDefault("service.writeTimeout", 30*time.Second)
	v.SetDefault("service.allowedOrigins", []string{"*"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.toFile", false)
	v.SetDefault("logging.filePath", "./logs/salesboard.log")

	v.SetDefault("databases.sql.driver", DriverSQLite)
	v.SetDefault("databases.sql.host", "localhost")
	v.SetDefault("databases.sql.port", "")
	v.SetDefault("databases.sql.username", "")
	v.SetDefault("databases.sql.password", "")
	v.SetDefault("databases.sql.database", "./data/salesboard.db")
	v.SetDefault("databases.sql.connection_string", "")
	v.SetDefault("databases.sql.autoMigrate", true)
	v.SetDefault("databases.sql.passwordSecretId", "")

	v.SetDefault("databases.redis.enabled", false)
	v.SetDefault("databases.redis.host", "localhost")
	v.SetDefault("databases.redis.port", "6379")
	v.SetDefault("databases.redis.username", "")
	v.SetDefault("databases.redis.password", "")
	v.SetDefault("databases.redis.database", 0)
	v.SetDefault("databases.redis.tls", false)

	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.prefix", "salesboard")

	v.SetDefault("externalClients.seed.url", "https://s3.amazonaws.com/roxiler.com/product_transaction.json")
	v.SetDefault("externalClients.seed.timeout", 15*time.Second)
	v.SetDefault("externalClients.seed.maxRetries", 3)
	v.SetDefault("externalClients.seed.retryInterval", 500*time.Millisecond)

	v.SetDefault("scheduler.reseedCron", "")
	v.SetDefault("aws.region", "us-east-1")
}

// Validate returns a single error listing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if c.Service.Type != API && c.Service.Type != WORKER {
		problems = append(problems, fmt.Sprintf("invalid service type '%s': must be %s or %s", c.Service.Type, API, WORKER))
	}

	if port, err := strconv.Atoi(c.Service.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Service.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Service.RequestTimeout <= 0 {
		problems = append(problems, "request timeout must be positive")
	}

	switch c.Databases.SQL.Driver {
	case DriverSQLite:
		if c.Databases.SQL.Database == "" && c.Databases.SQL.ConnectionString == "" {
			problems = append(problems, "sqlite database path cannot be empty")
		}
	case DriverPostgres, DriverMySQL:
		if c.Databases.SQL.ConnectionString == "" && c.Databases.SQL.Host == "" {
			problems = append(problems, fmt.Sprintf("%s requires a host or a connection_string", c.Databases.SQL.Driver))
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid sql driver '%s': must be one of %v",
			c.Databases.SQL.Driver, []string{DriverSQLite, DriverPostgres, DriverMySQL}))
	}

	if c.Databases.Redis.Enabled && c.Databases.Redis.Host == "" {
		problems = append(problems, "redis host cannot be empty when redis is enabled")
	}

	if c.Cache.TTL < 0 {
		problems = append(problems, fmt.Sprintf("invalid cache ttl %v: must not be negative", c.Cache.TTL))
	}

	if parsed, err := url.Parse(c.ExternalClients.Seed.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid seed url '%s'", c.ExternalClients.Seed.URL))
	}

	if parsed, err := url.Parse(c.Service.SelfURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid self url '%s'", c.Service.SelfURL))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// SecretGetter resolves a secret id to its plain value.
type SecretGetter interface {
	GetSecretValue(secretID string) (string, error)
}

// ApplySecrets replaces credentials that are configured by secret id.
func (c *Config) ApplySecrets(getter SecretGetter) error {
	if c.Databases.SQL.PasswordSecretID == "" {
		return nil
	}
	password, err := getter.GetSecretValue(c.Databases.SQL.PasswordSecretID)
	if err != nil {
		return fmt.Errorf("resolve sql password secret: %w", err)
	}
	c.Databases.SQL.Password = password
	return nil
}

// SeedRequestTimeout bounds a request that loads the seed dataset: every fetch
// attempt at its own timeout, the backoff waits between them, plus the regular
// request budget for storing the rows.
func (c *Config) SeedRequestTimeout() time.Duration {
	seed := c.ExternalClients.Seed
	attempts := time.Duration(seed.MaxRetries + 1)
	return attempts*seed.Timeout + time.Duration(seed.MaxRetries)*SeedMaxRetryInterval + c.Service.RequestTimeout
}

// HTTPWriteTimeout is the server write timeout, widened so a seeding request
// is not cut off before its own deadline.
func (c *Config) HTTPWriteTimeout() time.Duration {
	if seed := c.SeedRequestTimeout(); seed > c.Service.WriteTimeout {
		return seed
	}
	return c.Service.WriteTimeout
}
