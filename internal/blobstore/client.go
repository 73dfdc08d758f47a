// Пакет blobstore — клиент файлового хранилища.
// Формирует публичные URL для объектов (фото, изображения званий,
// документы) и проверяет доступность хранилища. Сами файлы сервис не
// проксирует: браузер забирает их напрямую по публичному URL.
// Поддерживает TLS с кастомным CA (AM_STORAGE_CA_CERT_PATH).
package blobstore

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client — клиент файлового хранилища.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New создаёт клиент хранилища.
// caCertPath — путь к CA-сертификату для TLS (пустая строка — стандартный пул).
func New(baseURL, caCertPath string, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата хранилища: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат хранилища добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "blobstore")),
	}, nil
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// PublicURL формирует публичный URL объекта в бакете.
// Сегменты пути объекта экранируются по отдельности, разделители
// сохраняются.
func (c *Client) PublicURL(bucket, objectPath string) string {
	segments := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		c.baseURL, url.PathEscape(bucket), strings.Join(segments, "/"))
}

// DownloadURL формирует публичный URL объекта с параметром download,
// подсказывающим браузеру имя сохраняемого файла.
func (c *Client) DownloadURL(bucket, objectPath, filename string) string {
	return c.PublicURL(bucket, objectPath) + "?download=" + url.QueryEscape(filename)
}

// BaseURL возвращает базовый URL хранилища (для dephealth-проверки).
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping проверяет доступность хранилища.
// GET /storage/v1/health — публичный endpoint.
func (c *Client) Ping(ctx context.Context) error {
	reqURL := c.baseURL + "/storage/v1/health"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("создание запроса Ping: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("запрос Ping к хранилищу: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("хранилище вернуло статус %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
