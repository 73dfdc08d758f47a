// documents.go — сервис скачивания документов.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/firestation/admin-module/internal/blobstore"
	"github.com/bigkaa/firestation/admin-module/internal/repository"
)

// DocumentsService — сервис документов сотрудников.
// Файлы не проксируются: сервис резолвит путь документа в публичный URL
// хранилища, браузер скачивает напрямую.
type DocumentsService struct {
	documentRepo repository.DocumentRepository
	blobClient   *blobstore.Client
	docsBucket   string
	logger       *slog.Logger
}

// NewDocumentsService создаёт сервис документов.
func NewDocumentsService(
	documentRepo repository.DocumentRepository,
	blobClient *blobstore.Client,
	docsBucket string,
	logger *slog.Logger,
) *DocumentsService {
	return &DocumentsService{
		documentRepo: documentRepo,
		blobClient:   blobClient,
		docsBucket:   docsBucket,
		logger:       logger.With(slog.String("component", "documents_service")),
	}
}

// DownloadURL возвращает публичный URL документа с подсказкой имени
// сохраняемого файла.
func (s *DocumentsService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: документ %s", ErrNotFound, id)
		}
		return "", fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	return s.blobClient.DownloadURL(s.docsBucket, doc.FilePath, doc.FileName), nil
}
