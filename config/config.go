package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	AuthModeJWT  = "jwt"
	AuthModeNoop = "noop"
)

type ServerConfig struct {
	Port              int  `mapstructure:"port"`
	PprofDebugEnabled bool `mapstructure:"pprof_debug_enabled"`
}

type DatabaseConfig struct {
	// Type is "postgres" for deployments; tests use sqlite directly.
	Type string `mapstructure:"type"`
	URL  string `mapstructure:"url"`
}

type AuthConfig struct {
	// Mode selects the middleware: "jwt" verifies bearer tokens, "noop" is
	// for local development only and is never the default.
	Mode string `mapstructure:"mode"`
	// JwtSecret is the shared secret the identity provider signs tokens with.
	JwtSecret string `mapstructure:"jwt_secret"`
	// EnforceAudience requires the token aud claim to equal Audience.
	EnforceAudience bool   `mapstructure:"enforce_audience"`
	Audience        string `mapstructure:"audience"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Sentry   SentryConfig   `mapstructure:"sentry"`

	BuildDate  string `mapstructure:"build_date"`
	DeployedAt string `mapstructure:"deployed_at"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.pprof_debug_enabled", false)
	v.SetDefault("database.type", "postgres")
	v.SetDefault("auth.mode", AuthModeJWT)
	v.SetDefault("auth.enforce_audience", true)
	v.SetDefault("auth.audience", "authenticated")
	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "json")
	v.SetDefault("build_date", "null")
	v.SetDefault("deployed_at", time.Now().UTC().Format(time.RFC3339))

	v.SetEnvPrefix("RESUMECRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/resumecraft")
	return v
}

// Load reads configuration from the given file (or config.yaml on the
// search path when empty) and the RESUMECRAFT_* environment, then
// validates it.
func Load(configPath string) (*Config, error) {
	v := newViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that must not reach serving. A deployment
// that verifies tokens without a secret would accept nothing or, worse,
// depend on ambient state, so the secret is a startup-time requirement.
func (c *Config) Validate() error {
	switch c.Auth.Mode {
	case AuthModeJWT:
		if c.Auth.JwtSecret == "" {
			return fmt.Errorf("auth.jwt_secret is required when auth.mode is %q", AuthModeJWT)
		}
	case AuthModeNoop:
		// allowed for local development only
	default:
		return fmt.Errorf("unknown auth.mode %q", c.Auth.Mode)
	}
	if c.Auth.EnforceAudience && c.Auth.Audience == "" {
		return fmt.Errorf("auth.audience is required when auth.enforce_audience is set")
	}
	return nil
}
