package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// placeholderRe находит ${VAR} и ${VAR:-default}
var placeholderRe = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// Defaults - значения devnotes по умолчанию, ключи в нотации viper
var Defaults = map[string]any{
	"logger.level": "info",

	"server.port_http":                 DefaultPortHTTP,
	"server.graceful_shutdown_timeout": DefaultShutdownTimeout,

	"gateway.cors_allowed_origins": "*",
	"gateway.rate_limit_rps":       DefaultRateLimitRPS,
	"gateway.rate_limit_burst":     DefaultRateLimitBurst,

	"storage.driver":     DefaultDriver,
	"storage.data_dir":   DefaultDataDir,
	"storage.cache_size": DefaultCacheSize,

	"reminders.permission":        DefaultPermission,
	"reminders.fallback_interval": DefaultFallbackInterval,
}

// expandEnvWithDefaults расширяет переменные окружения с поддержкой дефолтных значений
// Формат: ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		matches := placeholderRe.FindStringSubmatch(match)
		if len(matches) < 2 {
			return match
		}

		if value := os.Getenv(matches[1]); value != "" {
			return value
		}
		if len(matches) > 2 {
			return matches[2]
		}
		return ""
	})
}

// InitConfig читает конфигурационный файл поверх defaults и возвращает экземпляр конфигурации.
// Пустой configFile означает только значения по умолчанию.
func InitConfig[C any](configFile string, defaults map[string]any) (*C, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimLeft(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("v.ReadInConfig: %w", err)
		}
	}

	for _, k := range v.AllKeys() {
		value := v.GetString(k)
		if !strings.Contains(value, "${") {
			continue
		}
		expanded := expandEnvWithDefaults(value)

		// пустая подстановка возвращает значение по умолчанию
		if expanded == "" {
			if def, ok := defaults[k]; ok {
				v.Set(k, def)
				continue
			}
		}

		if expanded == "true" || expanded == "false" {
			boolValue, _ := strconv.ParseBool(expanded)
			v.Set(k, boolValue)
		} else if intValue, err := strconv.Atoi(expanded); err == nil {
			v.Set(k, intValue)
		} else {
			v.Set(k, expanded)
		}
	}

	cfg := new(C)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}
	return cfg, nil
}
