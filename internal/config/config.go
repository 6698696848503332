package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pct-cclausen/huntkeeper/pkg/crypto"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Store  StoreConfig  `mapstructure:"store"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Token  TokenConfig  `mapstructure:"token"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host                    string        `mapstructure:"host"`
	Port                    int           `mapstructure:"port"`
	Mode                    string        `mapstructure:"mode"`
	ReadTimeout             time.Duration `mapstructure:"read_timeout"`
	WriteTimeout            time.Duration `mapstructure:"write_timeout"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"` // "file" | "bolt"
	Path    string `mapstructure:"path"`
}

type AuthConfig struct {
	// Password is the plaintext shared secret game masters present when
	// creating codes. If only Password is set, Load hashes it so the rest of
	// the process only ever holds PasswordHash.
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

type TokenConfig struct {
	SigningKey string `mapstructure:"signing_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the yaml config, overlays environment variables, and returns
// Config. Environment override: STORE_PATH -> store.path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3010)
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.path", "state.json")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Token.SigningKey == "" {
		return errors.New("token.signing_key must be set")
	}
	if c.Auth.PasswordHash == "" {
		if c.Auth.Password == "" {
			return errors.New("one of auth.password or auth.password_hash must be set")
		}
		hash, err := crypto.HashPassword(c.Auth.Password)
		if err != nil {
			return err
		}
		c.Auth.PasswordHash = hash
		c.Auth.Password = ""
	}
	return nil
}
