package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
)

func setupDocuments(t *testing.T) *DocumentsService {
	t.Helper()

	docRepo := &fakeDocumentRepo{docs: []*model.DocumentRecord{
		{
			ID:          "d-001",
			PersonnelID: "p-001",
			FileName:    "Medal of Valor.pdf",
			FilePath:    "docs/medal_of_valor.pdf",
			UploadedAt:  date(2023, time.November, 5),
		},
	}}

	return NewDocumentsService(docRepo, testBlobClient(t), "personnel-documents", testLogger())
}

func TestDocumentsDownloadURL(t *testing.T) {
	svc := setupDocuments(t)

	url, err := svc.DownloadURL(context.Background(), "d-001")
	if err != nil {
		t.Fatalf("DownloadURL ошибка: %v", err)
	}

	want := "https://storage.test/storage/v1/object/public/personnel-documents/docs/medal_of_valor.pdf?download=Medal+of+Valor.pdf"
	if url != want {
		t.Errorf("URL = %q, ожидается %q", url, want)
	}
}

func TestDocumentsDownloadURLNotFound(t *testing.T) {
	svc := setupDocuments(t)

	_, err := svc.DownloadURL(context.Background(), "d-404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ожидается ErrNotFound, получено: %v", err)
	}
}

func TestDocumentsStoreUnavailable(t *testing.T) {
	svc := setupDocuments(t)
	svc.documentRepo = &fakeDocumentRepo{err: errors.New("connection refused")}

	_, err := svc.DownloadURL(context.Background(), "d-001")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("ожидается ErrStoreUnavailable, получено: %v", err)
	}
}
