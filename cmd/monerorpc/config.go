package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/refring/monero-rpc-go/pkg/log"
)

const (
	configDirPathEnv     = "MONERO_RPC_CONFIG_DIR"
	defaultConfigDirPath = "."
)

// Config is the command configuration, read from the environment and an
// optional .env file.
type Config struct {
	URL       string        `env:"MONERO_RPC_URL" env-required:"true"`
	Username  string        `env:"MONERO_RPC_USERNAME"`
	Password  string        `env:"MONERO_RPC_PASSWORD"`
	Timeout   time.Duration `env:"MONERO_RPC_TIMEOUT" env-default:"30s"`
	RateLimit float64       `env:"MONERO_RPC_RATE_LIMIT" env-default:"0"`
	Log       log.Config
}

// LoadConfig loads {MONERO_RPC_CONFIG_DIR}/.env when present, then reads the
// environment. When a username is set without a password and stdin is a
// terminal, the password is prompted for.
func LoadConfig() (*Config, error) {
	configDirPath := os.Getenv(configDirPathEnv)
	if configDirPath == "" {
		configDirPath = defaultConfigDirPath
	}

	configDotEnvPath := filepath.Join(configDirPath, ".env")
	if err := godotenv.Load(configDotEnvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", configDotEnvPath, err)
	}

	var conf Config
	if err := cleanenv.ReadEnv(&conf); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if conf.Username != "" && conf.Password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := promptPassword(conf.Username)
		if err != nil {
			return nil, err
		}
		conf.Password = password
	}

	return &conf, nil
}

func promptPassword(username string) (string, error) {
	fmt.Fprintf(os.Stderr, "Password for %s: ", username)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(password), nil
}
