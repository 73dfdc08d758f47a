// Точка входа Admin Module — административный модуль пожарной части.
// Загружает конфигурацию, подключается к PostgreSQL, применяет миграции,
// создаёт клиент файлового хранилища, сервисный слой и API handlers,
// запускает слушатель изменений коллекций, topologymetrics и
// HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/firestation/admin-module/internal/api/handlers"
	"github.com/bigkaa/firestation/admin-module/internal/blobstore"
	"github.com/bigkaa/firestation/admin-module/internal/config"
	"github.com/bigkaa/firestation/admin-module/internal/database"
	"github.com/bigkaa/firestation/admin-module/internal/notify"
	"github.com/bigkaa/firestation/admin-module/internal/repository"
	"github.com/bigkaa/firestation/admin-module/internal/server"
	"github.com/bigkaa/firestation/admin-module/internal/service"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Admin Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// Предупреждения о дефолтных значениях topologymetrics
	if os.Getenv("AM_DEPHEALTH_GROUP") == "" {
		logger.Warn("AM_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. Применение миграций БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Подключение к PostgreSQL (pgxpool)
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// 4.1 Адаптер pgxpool → *sql.DB для topologymetrics (connection pool mode).
	// Проверка здоровья PostgreSQL будет идти через существующий пул соединений,
	// что позволяет обнаружить его исчерпание.
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Клиент файлового хранилища
	blobClient, err := blobstore.New(cfg.StorageURL, cfg.StorageCACertPath, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента хранилища", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Клиент хранилища создан", slog.String("url", cfg.StorageURL))

	// 6. Repositories
	personnelRepo := repository.NewPersonnelRepository(pool)
	documentRepo := repository.NewDocumentRepository(pool)
	requestRepo := repository.NewRequestRepository(pool)
	equipmentRepo := repository.NewEquipmentRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	adminRepo := repository.NewAdminUserRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	// 7. Services
	personnelSvc := service.NewPersonnelService(
		personnelRepo, auditRepo, txRunner,
		blobClient, cfg.RankImagesBucket, cfg.PageSizePromotions,
		logger,
	)
	awardsSvc := service.NewAwardsService(
		documentRepo, personnelRepo,
		blobClient, cfg.DocumentsBucket, cfg.PageSizeAwards,
		logger,
	)
	activitySvc := service.NewActivityService(
		requestRepo, auditRepo, equipmentRepo, personnelRepo, adminRepo,
		cfg.PageSizeActivity,
		logger,
	)
	documentsSvc := service.NewDocumentsService(
		documentRepo, blobClient, cfg.DocumentsBucket,
		logger,
	)

	// 8. Слушатель изменений коллекций (LISTEN/NOTIFY)
	changeListener := notify.New(pool, cfg.NotifyReconnect, logger)
	changeListener.Start(ctx)

	// 9. topologymetrics — мониторинг зависимостей (PostgreSQL + хранилище)
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"admin-module",
		cfg.DephealthGroup,
		pgDB,
		cfg.DatabaseURL(),
		cfg.StorageURL,
		cfg.DephealthCheckInterval,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
		dephealthSvc = nil
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 10. Readiness checkers (PostgreSQL + хранилище)
	pgChecker := database.NewReadinessChecker(pool)
	storageChecker := handlers.NewStorageChecker(blobClient)
	healthHandler := handlers.NewHealthHandler(pgChecker, storageChecker)

	// 11. API handlers
	eventsHandler := handlers.NewEventsHandler(changeListener, cfg.SSEKeepalive, logger)
	apiHandler := handlers.NewAPIHandler(
		healthHandler,
		personnelSvc,
		awardsSvc,
		activitySvc,
		documentsSvc,
		eventsHandler,
		logger,
	)

	// 12. Создание и запуск HTTP-сервера
	srv := server.New(cfg, logger, apiHandler)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 13. Graceful shutdown фоновых задач
	logger.Info("Останавливаем фоновые задачи...")

	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}
	changeListener.Stop()

	logger.Info("Admin Module остановлен")
}
