// awards.go — сервис экрана наград.
// Собирает таблицу наград из двух коллекций: документы сотрудников и
// сами сотрудники. Агрегация в памяти: join по владельцу, проекция,
// фильтрация, пагинация, сводные счётчики по типам наград.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/firestation/admin-module/internal/blobstore"
	"github.com/bigkaa/firestation/admin-module/internal/domain/model"
	"github.com/bigkaa/firestation/admin-module/internal/repository"
	"github.com/bigkaa/firestation/admin-module/internal/view"
)

// AwardsService — сервис экрана наград.
type AwardsService struct {
	documentRepo  repository.DocumentRepository
	personnelRepo repository.PersonnelRepository
	blobClient    *blobstore.Client
	docsBucket    string
	pageSize      int
	logger        *slog.Logger
}

// NewAwardsService создаёт сервис наград.
// pageSize — размер страницы таблицы наград (AM_PAGE_SIZE_AWARDS).
func NewAwardsService(
	documentRepo repository.DocumentRepository,
	personnelRepo repository.PersonnelRepository,
	blobClient *blobstore.Client,
	docsBucket string,
	pageSize int,
	logger *slog.Logger,
) *AwardsService {
	return &AwardsService{
		documentRepo:  documentRepo,
		personnelRepo: personnelRepo,
		blobClient:    blobClient,
		docsBucket:    docsBucket,
		pageSize:      pageSize,
		logger:        logger.With(slog.String("component", "awards_service")),
	}
}

// AwardsPage — страница экрана наград.
type AwardsPage struct {
	// Rows — строки текущей страницы
	Rows []view.AwardRow `json:"rows"`
	// Pagination — состояние пагинации
	Pagination view.Pagination `json:"pagination"`
	// Total — размер коллекции до фильтрации
	Total int `json:"total"`
	// Summary — счётчики по типам наград (по всей коллекции, до фильтрации)
	Summary map[string]int `json:"summary"`
}

// List строит экран наград.
// Документы без владельца в коллекцию не попадают: дыра в данных
// логируется и строка пропускается, остальная таблица строится штатно.
func (s *AwardsService) List(ctx context.Context, st view.FilterState) (*AwardsPage, error) {
	docs, err := s.documentRepo.List(ctx, repository.DocumentFilters{}, fetchAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	people, err := s.personnelRepo.List(ctx, repository.PersonnelFilters{}, fetchAllLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err) //nolint:errorlint // намеренный двойной wrap
	}

	owners := make(map[string]*model.PersonRecord, len(people))
	for _, p := range people {
		owners[p.ID] = p
	}

	rows := make([]view.AwardRow, 0, len(docs))
	summary := make(map[string]int)
	for _, doc := range docs {
		row, err := view.ProjectAward(doc, owners[doc.PersonnelID])
		if err != nil {
			if errors.Is(err, view.ErrProjectionGap) {
				s.logger.Warn("Документ пропущен",
					slog.String("document_id", doc.ID),
					slog.String("error", err.Error()),
				)
				continue
			}
			return nil, err
		}
		row.FileURL = s.blobClient.DownloadURL(s.docsBucket, row.FilePath, row.FileName)
		summary[row.AwardType]++
		rows = append(rows, row)
	}

	filtered := view.Apply(rows, st)
	pageRows, pagination := view.Paginated(filtered, s.pageSize, st.Page)

	return &AwardsPage{
		Rows:       pageRows,
		Pagination: pagination,
		Total:      len(rows),
		Summary:    summary,
	}, nil
}
