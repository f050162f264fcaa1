package config

import (
	"fmt"
	"time"

	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/errors"
)

// Config holds the application's configuration.
type Config struct {
	Environment string         `mapstructure:"environment"`
	Server      ServerConfig   `mapstructure:"server"`
	Database    DatabaseConfig `mapstructure:"database"`
	Redis       RedisConfig    `mapstructure:"redis"`
	Kafka       KafkaConfig    `mapstructure:"kafka"`
	Vault       VaultConfig    `mapstructure:"vault"`
	JWT         JWTConfig      `mapstructure:"jwt"`
	Log         LogConfig      `mapstructure:"log"`
	Tracing     TracingConfig  `mapstructure:"tracing"`
	Risk        RiskConfig     `mapstructure:"risk"`
	Audit       AuditConfig    `mapstructure:"audit"`
}

type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	GRPCPort     int      `mapstructure:"grpc_port"`
	ReadTimeout  int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int      `mapstructure:"write_timeout"` // in seconds
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

// Addr returns the HTTP listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GRPCAddr returns the gRPC listen address.
func (c *ServerConfig) GRPCAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	SSLMode         string `mapstructure:"ssl_mode"`
	SQLitePath      string `mapstructure:"sqlite_path"`
	MaxConns        int    `mapstructure:"max_conns"`
	MinConns        int    `mapstructure:"min_conns"`
	MaxConnLifetime int    `mapstructure:"max_conn_lifetime"` // in minutes
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
}

// GetDSN builds the postgres DSN.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type RedisConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size"`
	MinIdleConns int    `mapstructure:"min_idle_conns"`
	KeyPrefix    string `mapstructure:"key_prefix"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// Enabled reports whether events go to Kafka instead of the log.
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type VaultConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Address    string `mapstructure:"address"`
	Token      string `mapstructure:"token"`
	MountPath  string `mapstructure:"mount_path"`
	SecretPath string `mapstructure:"secret_path"`
}

type JWTConfig struct {
	Secret         string `mapstructure:"secret"`
	Issuer         string `mapstructure:"issuer"`
	AccessTokenTTL int    `mapstructure:"access_token_ttl"` // in seconds
}

// TTL returns the access token lifetime.
func (c *JWTConfig) TTL() time.Duration {
	if c.AccessTokenTTL <= 0 {
		return constants.AccessTokenDefaultTTL
	}
	return time.Duration(c.AccessTokenTTL) * time.Second
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

type RiskConfig struct {
	// JitterEnabled replaces scores below 10 with a random value in [0,10].
	JitterEnabled bool  `mapstructure:"jitter_enabled"`
	JitterSeed    int64 `mapstructure:"jitter_seed"`
	// GatherTimeout bounds metric collection for one assessment, in seconds.
	GatherTimeout int `mapstructure:"gather_timeout"`
}

type AuditConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// HMACKey signs every audit row. Rows are stored unsigned when empty.
	HMACKey string `mapstructure:"hmac_key"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == constants.EnvProduction
}

// Validate checks the loaded configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.ErrInvalidRequest(fmt.Sprintf("invalid server.port: %d", c.Server.Port))
	}
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return errors.ErrInvalidRequest(fmt.Sprintf("invalid server.grpc_port: %d", c.Server.GRPCPort))
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Database == "" {
			return errors.ErrInvalidRequest("database host, user and database are required for postgres")
		}
		if c.Database.Port <= 0 {
			return errors.ErrInvalidRequest(fmt.Sprintf("invalid database.port: %d", c.Database.Port))
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return errors.ErrInvalidRequest("database.sqlite_path is required for sqlite")
		}
	default:
		return errors.ErrInvalidRequest(fmt.Sprintf("unsupported database.driver: %q", c.Database.Driver))
	}

	if c.Redis.Enabled && c.Redis.Address == "" {
		return errors.ErrInvalidRequest("redis.address is required when redis is enabled")
	}

	if c.Vault.Enabled {
		if c.Vault.Address == "" || c.Vault.SecretPath == "" {
			return errors.ErrInvalidRequest("vault.address and vault.secret_path are required when vault is enabled")
		}
	} else if c.JWT.Secret == "" {
		return errors.ErrInvalidRequest("jwt.secret is required when vault is disabled")
	}

	if c.Tracing.Enabled && c.Tracing.JaegerEndpoint == "" {
		return errors.ErrInvalidRequest("tracing.jaeger_endpoint is required when tracing is enabled")
	}
	return nil
}
