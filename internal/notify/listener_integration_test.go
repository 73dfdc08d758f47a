package notify

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/firestation/admin-module/internal/config"
	"github.com/bigkaa/firestation/admin-module/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// setupTestDB запускает PostgreSQL контейнер, применяет миграции.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("firestation_test"),
		postgres.WithUsername("firestation"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	os.Setenv("AM_DB_HOST", host)
	os.Setenv("AM_DB_PORT", port.Port())
	os.Setenv("AM_DB_NAME", "firestation_test")
	os.Setenv("AM_DB_USER", "firestation")
	os.Setenv("AM_DB_PASSWORD", "test-password")
	os.Setenv("AM_DB_SSL_MODE", "disable")
	os.Setenv("AM_STORAGE_URL", "https://storage.test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return pool
}

// TestListenerReceivesTriggerNotification проверяет цепочку целиком:
// INSERT → триггер → pg_notify → LISTEN → канал подписчика.
func TestListenerReceivesTriggerNotification(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	listener := New(pool, time.Second, logger)
	listener.Start(ctx)
	t.Cleanup(listener.Stop)

	changes, release := listener.Subscribe("personnel")
	defer release()

	insert := func() {
		_, err := pool.Exec(ctx, `
			INSERT INTO personnel (id, first_name, last_name, rank, badge_number, hire_date)
			VALUES ($1, 'test', 'smith', 'FO1', $2, '2020-01-01')`,
			uuid.New().String(), uuid.New().String())
		if err != nil {
			t.Fatalf("INSERT ошибка: %v", err)
		}
	}

	// LISTEN устанавливается асинхронно: повторяем INSERT,
	// пока уведомление не дойдёт.
	deadline := time.After(15 * time.Second)
	for {
		insert()
		select {
		case table := <-changes:
			if table != "personnel" {
				t.Fatalf("получена таблица %q, хотели personnel", table)
			}
			return
		case <-deadline:
			t.Fatal("уведомление не получено за 15 секунд")
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// TestListenerIgnoresOtherTables проверяет, что подписка на одну таблицу
// не получает уведомления об изменениях других.
func TestListenerIgnoresOtherTables(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	listener := New(pool, time.Second, logger)
	listener.Start(ctx)
	t.Cleanup(listener.Stop)

	// Ждём установки LISTEN: изменение в personnel должно дойти
	probe, probeRelease := listener.Subscribe("personnel")
	defer probeRelease()

	changes, release := listener.Subscribe("equipment_items")
	defer release()

	deadline := time.After(15 * time.Second)
	for ready := false; !ready; {
		if _, err := pool.Exec(ctx, `
			INSERT INTO personnel (id, first_name, last_name, rank, badge_number, hire_date)
			VALUES ($1, 'test', 'smith', 'FO1', $2, '2020-01-01')`,
			uuid.New().String(), uuid.New().String()); err != nil {
			t.Fatalf("INSERT ошибка: %v", err)
		}
		select {
		case <-probe:
			ready = true
		case <-deadline:
			t.Fatal("LISTEN не установился за 15 секунд")
		case <-time.After(500 * time.Millisecond):
		}
	}

	// Подписчику на equipment_items изменения personnel не доставлялись
	select {
	case table := <-changes:
		t.Fatalf("получено постороннее уведомление %q", table)
	case <-time.After(time.Second):
	}
}
