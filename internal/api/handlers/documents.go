// documents.go — обработчик скачивания документов.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/firestation/admin-module/internal/api/errors"
	"github.com/bigkaa/firestation/admin-module/internal/service"
)

// DownloadDocument — GET /api/v1/documents/{id}/download.
// Редирект на публичный URL документа в хранилище с подсказкой
// имени сохраняемого файла.
func (h *APIHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	url, err := h.documents.DownloadURL(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			apierrors.NotFound(w, "Документ не найден")
			return
		}
		h.logger.Error("Ошибка скачивания документа", slog.String("document_id", id), slog.String("error", err.Error()))
		apierrors.StoreUnavailable(w, "Ошибка скачивания документа")
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}
