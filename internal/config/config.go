package config

import (
	"errors"
	"os"
	"strings"

	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type GateConfig struct {
	PassphraseHash string        `mapstructure:"passphrase_hash"`
	TokenSecret    string        `mapstructure:"token_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	MaxStrikes     int           `mapstructure:"max_strikes"`
	BanFor         time.Duration `mapstructure:"ban_for"`
}

type ImportConfig struct {
	ReferencePath string `mapstructure:"reference_path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Gate     GateConfig     `mapstructure:"gate"`
	Import   ImportConfig   `mapstructure:"import"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// Load reads config.yaml (working dir or ./config) and the environment.
// Every key can be overridden via BEADVAULT_SECTION_KEY variables; a plain
// DATABASE_URL is honored as well.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("beadvault")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("gate.token_ttl", "720h")
	v.SetDefault("gate.max_strikes", 5)
	v.SetDefault("gate.ban_for", "10m")
	v.SetDefault("import.reference_path", "config/reference.yaml")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = os.Getenv("DATABASE_URL")
	}
	return cfg, nil
}
