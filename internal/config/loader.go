package config

import (
	"context"
	goerrors "errors"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// Loader reads configuration from file and environment and can watch the file
// for changes.
type Loader struct {
	v   *viper.Viper
	log logger.Logger
}

// NewLoader creates a loader. An explicit file path wins over the default search paths.
func NewLoader(configFile string, log logger.Logger) *Loader {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/acadmin/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ACADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, log: log}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.grpc_port", 50051)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "acadmin")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "acadmin")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.sqlite_path", "acadmin.db")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", 30)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.key_prefix", "acadmin")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "acadmin.events")

	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.mount_path", "secret")
	v.SetDefault("vault.secret_path", "acadmin/jwt")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "acadmin")
	v.SetDefault("jwt.access_token_ttl", 3600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_path", "stdout")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "")
	v.SetDefault("tracing.service_name", "acadmin")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("risk.jitter_enabled", true)
	v.SetDefault("risk.jitter_seed", 0)
	v.SetDefault("risk.gather_timeout", 5)

	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.hmac_key", "")
}

// Load reads and validates the configuration. A missing config file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !goerrors.As(err, &notFound) {
			return nil, errors.ErrInvalidRequest("failed to read config file").WithCause(err)
		}
		l.log.Info(context.Background(), "no config file found, using defaults and environment")
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, errors.ErrInvalidRequest("failed to unmarshal config").WithCause(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch calls onChange with the re-read configuration whenever the config file
// changes. Invalid updates are logged and skipped.
func (l *Loader) Watch(onChange func(*Config)) {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		ctx := context.Background()
		cfg, err := l.unmarshal()
		if err != nil {
			l.log.Error(ctx, "ignoring invalid config update", err, logger.String("file", e.Name))
			return
		}
		l.log.Info(ctx, "config file changed", logger.String("file", e.Name), logger.String("op", e.Op.String()))
		onChange(cfg)
	})
	l.v.WatchConfig()
}

// LoadConfig is a convenience wrapper for one-shot loading.
func LoadConfig(configFile string, log logger.Logger) (*Config, error) {
	return NewLoader(configFile, log).Load()
}
