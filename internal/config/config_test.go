package config

import (
	"log/slog"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"AM_DB_HOST":     "localhost",
		"AM_DB_NAME":     "firestation",
		"AM_DB_USER":     "firestation",
		"AM_DB_PASSWORD": "secret",
		"AM_STORAGE_URL": "https://storage.firestation.lan",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	// Проверяем значения по умолчанию
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, ожидается 8000", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, ожидается 5432", cfg.DBPort)
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, ожидается disable", cfg.DBSSLMode)
	}
	if cfg.RankImagesBucket != "rank_images" {
		t.Errorf("RankImagesBucket = %q, ожидается rank_images", cfg.RankImagesBucket)
	}
	if cfg.DocumentsBucket != "personnel-documents" {
		t.Errorf("DocumentsBucket = %q, ожидается personnel-documents", cfg.DocumentsBucket)
	}
	if cfg.PageSizeAwards != 5 {
		t.Errorf("PageSizeAwards = %d, ожидается 5", cfg.PageSizeAwards)
	}
	if cfg.PageSizePromotions != 5 {
		t.Errorf("PageSizePromotions = %d, ожидается 5", cfg.PageSizePromotions)
	}
	if cfg.PageSizeActivity != 10 {
		t.Errorf("PageSizeActivity = %d, ожидается 10", cfg.PageSizeActivity)
	}
	if cfg.SSEKeepalive != 15*time.Second {
		t.Errorf("SSEKeepalive = %v, ожидается 15s", cfg.SSEKeepalive)
	}
	if cfg.NotifyReconnect != 5*time.Second {
		t.Errorf("NotifyReconnect = %v, ожидается 5s", cfg.NotifyReconnect)
	}
	if cfg.DephealthGroup != "firestation" {
		t.Errorf("DephealthGroup = %q, ожидается firestation", cfg.DephealthGroup)
	}
	if cfg.DephealthCheckInterval != 15*time.Second {
		t.Errorf("DephealthCheckInterval = %v, ожидается 15s", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	envs := minimalEnvs()
	envs["AM_PORT"] = "8003"
	envs["AM_LOG_LEVEL"] = "debug"
	envs["AM_LOG_FORMAT"] = "text"
	envs["AM_DB_PORT"] = "5433"
	envs["AM_DB_SSL_MODE"] = "require"
	envs["AM_STORAGE_URL"] = "https://storage.firestation.lan/"
	envs["AM_PAGE_SIZE_AWARDS"] = "7"
	envs["AM_SSE_KEEPALIVE"] = "30s"
	envs["AM_NOTIFY_RECONNECT"] = "10s"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8003 {
		t.Errorf("Port = %d, ожидается 8003", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидается text", cfg.LogFormat)
	}
	if cfg.DBPort != 5433 {
		t.Errorf("DBPort = %d, ожидается 5433", cfg.DBPort)
	}
	if cfg.DBSSLMode != "require" {
		t.Errorf("DBSSLMode = %q, ожидается require", cfg.DBSSLMode)
	}
	// Trailing slash убирается
	if cfg.StorageURL != "https://storage.firestation.lan" {
		t.Errorf("StorageURL = %q, ожидается без trailing slash", cfg.StorageURL)
	}
	if cfg.PageSizeAwards != 7 {
		t.Errorf("PageSizeAwards = %d, ожидается 7", cfg.PageSizeAwards)
	}
	if cfg.SSEKeepalive != 30*time.Second {
		t.Errorf("SSEKeepalive = %v, ожидается 30s", cfg.SSEKeepalive)
	}
	if cfg.NotifyReconnect != 10*time.Second {
		t.Errorf("NotifyReconnect = %v, ожидается 10s", cfg.NotifyReconnect)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		missing string
	}{
		{"без AM_DB_HOST", "AM_DB_HOST"},
		{"без AM_DB_NAME", "AM_DB_NAME"},
		{"без AM_DB_USER", "AM_DB_USER"},
		{"без AM_DB_PASSWORD", "AM_DB_PASSWORD"},
		{"без AM_STORAGE_URL", "AM_STORAGE_URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envs := minimalEnvs()
			delete(envs, tt.missing)
			// t.Setenv с пустым значением не срабатывает как отсутствие,
			// поэтому выставляем все кроме отсутствующей.
			for k, v := range envs {
				t.Setenv(k, v)
			}
			t.Setenv(tt.missing, "")

			if _, err := Load(); err == nil {
				t.Errorf("Load() без %s должен вернуть ошибку", tt.missing)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"порт вне диапазона", "AM_PORT", "9000"},
		{"порт не число", "AM_PORT", "abc"},
		{"неизвестный уровень логов", "AM_LOG_LEVEL", "verbose"},
		{"неизвестный формат логов", "AM_LOG_FORMAT", "xml"},
		{"неизвестный SSL-режим", "AM_DB_SSL_MODE", "maybe"},
		{"нулевой размер страницы", "AM_PAGE_SIZE_AWARDS", "0"},
		{"слишком большой размер страницы", "AM_PAGE_SIZE_ACTIVITY", "1000"},
		{"некорректная длительность", "AM_SSE_KEEPALIVE", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvs(t, minimalEnvs())
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("Load() с %s=%q должен вернуть ошибку", tt.key, tt.val)
			}
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	dsn := cfg.DatabaseDSN()
	want := "host=localhost port=5432 dbname=firestation user=firestation password=secret sslmode=disable"
	if dsn != want {
		t.Errorf("DatabaseDSN() = %q, ожидается %q", dsn, want)
	}
}
