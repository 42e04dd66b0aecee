package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPConfig struct {
	Address string        `yaml:"address" env:"API_ADDRESS" env-default:":8080"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"5s"`
}

type DBConfig struct {
	Driver  string `yaml:"driver" env:"DB_DRIVER" env-default:"pgx"` // pgx | sqlite3
	Address string `yaml:"address" env:"DB_ADDRESS" env-required:"true"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"30m"`
	// RequireAuth closes task and tag endpoints to callers without a token.
	// Off by default: anonymous callers only see and create public records.
	RequireAuth bool `yaml:"require_auth" env:"AUTH_REQUIRE_AUTH" env-default:"false"`
}

type Config struct {
	LogLevel string     `yaml:"log_level" env:"LOG_LEVEL" env-default:"DEBUG"`
	HTTP     HTTPConfig `yaml:"api_server"`
	DB       DBConfig   `yaml:"db"`
	Auth     AuthConfig `yaml:"auth"`
}

// Load reads configPath, falling back to the environment when the path is
// empty or the file does not exist.
func Load(configPath string) (Config, error) {
	var cfg Config

	// если путь пустой - просто env
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}

	// пробуем файл, если его нет - env
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pe *os.PathError
		if errors.As(err, &pe) {
			if err := cleanenv.ReadEnv(&cfg); err != nil {
				return Config{}, err
			}
			return cfg, nil
		}
		return Config{}, err
	}

	return cfg, nil
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config %q: %s", configPath, err)
	}
	return cfg
}
