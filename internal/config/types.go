package config

// ConfigLogger настройки логирования
type ConfigLogger struct {
	Level string `mapstructure:"level"`
}

// ConfigServer настройки HTTP сервера
type ConfigServer struct {
	PortHTTP                int    `mapstructure:"port_http"`
	HTTPReadTimeout         int    `mapstructure:"http_read_timeout"`
	HTTPWriteTimeout        int    `mapstructure:"http_write_timeout"`
	HTTPIdleTimeout         int    `mapstructure:"http_idle_timeout"`
	HTTPReadHeaderTimeout   int    `mapstructure:"http_read_header_timeout"`
	GracefulShutdownTimeout int    `mapstructure:"graceful_shutdown_timeout"`
	AuthToken               string `mapstructure:"auth_token"` // пустой токен отключает авторизацию
}

// ConfigGateway настройки HTTP слоя: CORS и rate limiting
type ConfigGateway struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	CORSMaxAge         int    `mapstructure:"cors_max_age"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

// ConfigStorage настройки хранилищ
type ConfigStorage struct {
	Driver    string `mapstructure:"driver"`     // sqlite | mysql | memory
	DSN       string `mapstructure:"dsn"`        // строка подключения для gorm
	DataDir   string `mapstructure:"data_dir"`   // каталог diskv для тегов и настроек
	CacheSize int    `mapstructure:"cache_size"` // размер LRU зеркала заметок
}

// ConfigReminders настройки уведомлений
type ConfigReminders struct {
	NotificationsEnabled bool   `mapstructure:"notifications_enabled"`
	Permission           string `mapstructure:"permission"`        // начальный статус локального уведомителя
	GrantOnRequest       bool   `mapstructure:"grant_on_request"`  // ответ на запрос разрешения
	FallbackInterval     int    `mapstructure:"fallback_interval"` // секунды между сверками разрешения
}

// Config основная структура конфигурации
type Config struct {
	Logger    *ConfigLogger    `mapstructure:"logger"`
	Server    *ConfigServer    `mapstructure:"server"`
	Gateway   *ConfigGateway   `mapstructure:"gateway"`
	Storage   *ConfigStorage   `mapstructure:"storage"`
	Reminders *ConfigReminders `mapstructure:"reminders"`
}
