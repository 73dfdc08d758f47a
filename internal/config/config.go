// Пакет config — загрузка и валидация конфигурации Admin Module
// пожарной части из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Admin Module.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера (диапазон 8000-8009)
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- PostgreSQL ---

	// Хост PostgreSQL
	DBHost string
	// Порт PostgreSQL
	DBPort int
	// Имя базы данных
	DBName string
	// Имя пользователя PostgreSQL
	DBUser string
	// Пароль пользователя PostgreSQL
	DBPassword string
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string

	// --- Blob storage ---

	// Базовый URL хранилища файлов (например, https://storage.firestation.lan)
	StorageURL string
	// Путь к CA-сертификату для TLS-соединений с хранилищем (опционально)
	StorageCACertPath string
	// Имя bucket с изображениями званий
	RankImagesBucket string
	// Имя bucket с документами личного состава
	DocumentsBucket string

	// --- Экраны (размеры страниц таблиц) ---

	// Размер страницы таблицы наград
	PageSizeAwards int
	// Размер страницы таблицы повышений
	PageSizePromotions int
	// Размер страницы ленты активности
	PageSizeActivity int

	// --- Live-обновления ---

	// Интервал keepalive-комментариев SSE
	SSEKeepalive time.Duration
	// Пауза перед переподключением LISTEN-соединения
	NotifyReconnect time.Duration

	// --- Мониторинг зависимостей ---

	// Имя группы в метриках topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// AM_PORT — порт HTTP-сервера (по умолчанию 8000)
	cfg.Port, err = getEnvInt("AM_PORT", 8000)
	if err != nil {
		return nil, fmt.Errorf("AM_PORT: %w", err)
	}
	if cfg.Port < 8000 || cfg.Port > 8009 {
		return nil, fmt.Errorf("AM_PORT: значение %d вне допустимого диапазона 8000-8009", cfg.Port)
	}

	// AM_LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("AM_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("AM_LOG_LEVEL: %w", err)
	}

	// AM_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("AM_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("AM_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- PostgreSQL ---

	// AM_DB_HOST — обязательный
	cfg.DBHost, err = getEnvRequired("AM_DB_HOST")
	if err != nil {
		return nil, err
	}

	// AM_DB_PORT — порт PostgreSQL (по умолчанию 5432)
	cfg.DBPort, err = getEnvInt("AM_DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("AM_DB_PORT: %w", err)
	}

	// AM_DB_NAME — обязательный
	cfg.DBName, err = getEnvRequired("AM_DB_NAME")
	if err != nil {
		return nil, err
	}

	// AM_DB_USER — обязательный
	cfg.DBUser, err = getEnvRequired("AM_DB_USER")
	if err != nil {
		return nil, err
	}

	// AM_DB_PASSWORD — обязательный
	cfg.DBPassword, err = getEnvRequired("AM_DB_PASSWORD")
	if err != nil {
		return nil, err
	}

	// AM_DB_SSL_MODE — режим SSL (по умолчанию disable)
	cfg.DBSSLMode = getEnvDefault("AM_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("AM_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Blob storage ---

	// AM_STORAGE_URL — обязательный
	cfg.StorageURL, err = getEnvRequired("AM_STORAGE_URL")
	if err != nil {
		return nil, err
	}
	// Убираем trailing slash
	cfg.StorageURL = strings.TrimRight(cfg.StorageURL, "/")

	// AM_STORAGE_CA_CERT_PATH — путь к CA-сертификату хранилища (опционально)
	cfg.StorageCACertPath = getEnvDefault("AM_STORAGE_CA_CERT_PATH", "")

	// AM_STORAGE_RANK_BUCKET — bucket изображений званий (по умолчанию rank_images)
	cfg.RankImagesBucket = getEnvDefault("AM_STORAGE_RANK_BUCKET", "rank_images")

	// AM_STORAGE_DOCS_BUCKET — bucket документов (по умолчанию personnel-documents)
	cfg.DocumentsBucket = getEnvDefault("AM_STORAGE_DOCS_BUCKET", "personnel-documents")

	// --- Экраны ---

	// AM_PAGE_SIZE_AWARDS — размер страницы наград (по умолчанию 5)
	cfg.PageSizeAwards, err = getEnvPageSize("AM_PAGE_SIZE_AWARDS", 5)
	if err != nil {
		return nil, err
	}

	// AM_PAGE_SIZE_PROMOTIONS — размер страницы повышений (по умолчанию 5)
	cfg.PageSizePromotions, err = getEnvPageSize("AM_PAGE_SIZE_PROMOTIONS", 5)
	if err != nil {
		return nil, err
	}

	// AM_PAGE_SIZE_ACTIVITY — размер страницы ленты активности (по умолчанию 10)
	cfg.PageSizeActivity, err = getEnvPageSize("AM_PAGE_SIZE_ACTIVITY", 10)
	if err != nil {
		return nil, err
	}

	// --- Live-обновления ---

	// AM_SSE_KEEPALIVE — интервал keepalive SSE (по умолчанию 15s)
	cfg.SSEKeepalive, err = getEnvDuration("AM_SSE_KEEPALIVE", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AM_SSE_KEEPALIVE: %w", err)
	}

	// AM_NOTIFY_RECONNECT — пауза переподключения LISTEN (по умолчанию 5s)
	cfg.NotifyReconnect, err = getEnvDuration("AM_NOTIFY_RECONNECT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AM_NOTIFY_RECONNECT: %w", err)
	}

	// --- Мониторинг зависимостей ---

	// AM_DEPHEALTH_GROUP — группа в метриках (по умолчанию firestation)
	cfg.DephealthGroup = getEnvDefault("AM_DEPHEALTH_GROUP", "firestation")

	// AM_DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 15s)
	cfg.DephealthCheckInterval, err = getEnvDuration("AM_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AM_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// AM_SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("AM_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("AM_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения к PostgreSQL
// (для topologymetrics — лейблы метрик, не подключение).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvPageSize возвращает размер страницы таблицы из переменной окружения
// с проверкой диапазона 1-100.
func getEnvPageSize(key string, defaultVal int) (int, error) {
	n, err := getEnvInt(key, defaultVal)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < 1 || n > 100 {
		return 0, fmt.Errorf("%s: значение %d вне допустимого диапазона 1-100", key, n)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
