package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

const (
	DefaultPortHTTP         = 8080
	DefaultShutdownTimeout  = 10
	DefaultRateLimitRPS     = 100
	DefaultRateLimitBurst   = 10
	DefaultDataDir          = "~/.devnotes"
	DefaultDriver           = "sqlite"
	DefaultCacheSize        = 1000
	DefaultPermission       = "not-determined"
	DefaultFallbackInterval = 60
)

// LoadEnv загружает переменные окружения из .env файлов, если они есть
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("⚠️  Warning: .env not loaded: %v", err)
	}
}

// ApplyDefaults раскрывает ~ в каталоге данных и выводит DSN sqlite из него
func ApplyDefaults(cfg *Config) error {
	if cfg.Storage == nil {
		return errors.New("storage section is missing")
	}

	dataDir, err := homedir.Expand(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("expand data_dir: %w", err)
	}
	cfg.Storage.DataDir = dataDir
	if cfg.Storage.DSN == "" && cfg.Storage.Driver == "sqlite" {
		cfg.Storage.DSN = filepath.Join(dataDir, "notes.db")
	}
	return nil
}

// Load читает файл конфигурации поверх значений по умолчанию
func Load(configFile string) (*Config, error) {
	cfg, err := InitConfig[Config](configFile, Defaults)
	if err != nil {
		return nil, err
	}
	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default возвращает конфигурацию только из значений по умолчанию
func Default() (*Config, error) {
	return Load("")
}
