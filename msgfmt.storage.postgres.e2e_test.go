//go:build integration

package msgfmt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer creates an ephemeral PostgreSQL container for testing.
func setupPostgresContainer(t *testing.T) (*PostgresStorage, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("msgfmt_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	storage, err := NewPostgresStorage(PostgresConfig{
		ConnectionString: connStr,
		AutoMigrate:      true,
		QueryTimeout:     30 * time.Second,
	})
	require.NoError(t, err, "failed to create postgres storage")

	cleanup := func() {
		if storage != nil {
			_ = storage.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	}

	return storage, cleanup
}

func TestPostgres_E2E_Contract(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()

	runCatalogStorageContract(t, storage)
}

func TestPostgres_E2E_Migrations(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	version, err := storage.CurrentSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(storage.migrations()), version)

	// Re-running is a no-op
	require.NoError(t, storage.RunMigrations(ctx))
	again, err := storage.CurrentSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, version, again)
}

func TestPostgres_E2E_DescriptionAndPrefixQuery(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, storage.Put(ctx, &StoredMessage{
		Locale: "en", Key: "promo_100%", Source: "Save big", Description: "banner",
	}))
	require.NoError(t, storage.Put(ctx, &StoredMessage{Locale: "en", Key: "promoX100", Source: "x"}))

	got, err := storage.Get(ctx, "en", "promo_100%")
	require.NoError(t, err)
	assert.Equal(t, "banner", got.Description)

	// Wildcards in the prefix match literally
	matched, err := storage.List(ctx, &CatalogQuery{KeyPrefix: "promo_"})
	require.NoError(t, err)
	assert.Equal(t, []string{"en/promo_100%"}, addresses(matched))

	paged, err := storage.List(ctx, &CatalogQuery{Locale: "en", Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestPostgres_E2E_BundleRender(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	bundle := NewBundle(storage)
	require.NoError(t, bundle.Put(ctx, &StoredMessage{
		Locale: "de", Key: "inbox", Source: "{n, plural, one {# Nachricht} other {# Nachrichten}}",
	}))

	out, err := bundle.RenderToString(ctx, "de-AT", "inbox", Arg("n", 3))
	require.NoError(t, err)
	assert.Equal(t, "3 Nachrichten", out)
}

func TestPostgres_E2E_ConcurrentPut(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, storage.Put(ctx, &StoredMessage{Locale: "en", Key: "shared", Source: "x"}))
		}()
	}
	wg.Wait()

	all, err := storage.List(ctx, &CatalogQuery{Locale: "en"})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPostgres_E2E_CloseIsIdempotent(t *testing.T) {
	storage, cleanup := setupPostgresContainer(t)
	defer cleanup()

	require.NoError(t, storage.Close())
	require.NoError(t, storage.Close())

	_, err := storage.Locales(context.Background())
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)
}
