package msgfmt

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStorageDriver implements StorageDriver for testing
type mockStorageDriver struct {
	storage CatalogStorage
	err     error
}

func (d *mockStorageDriver) Open(connectionString string) (CatalogStorage, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.storage, nil
}

func TestStorageDriverRegistry(t *testing.T) {
	t.Run("built-in drivers are registered", func(t *testing.T) {
		drivers := ListStorageDrivers()
		assert.Contains(t, drivers, StorageDriverNameMemory)
		assert.Contains(t, drivers, StorageDriverNameFilesystem)
		assert.Contains(t, drivers, StorageDriverNamePostgres)
	})

	t.Run("opens a custom driver", func(t *testing.T) {
		mem := NewMemoryStorage()
		RegisterStorageDriver("test_custom_driver", &mockStorageDriver{storage: mem})

		storage, err := OpenStorage("test_custom_driver", "")
		require.NoError(t, err)
		assert.Same(t, mem, storage)
	})

	t.Run("propagates driver errors", func(t *testing.T) {
		openErr := errors.New("cannot open")
		RegisterStorageDriver("test_failing_driver", &mockStorageDriver{err: openErr})

		_, err := OpenStorage("test_failing_driver", "")
		assert.ErrorIs(t, err, openErr)
	})

	t.Run("duplicate registration panics", func(t *testing.T) {
		assert.Panics(t, func() {
			RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
		})
	})

	t.Run("nil driver panics", func(t *testing.T) {
		assert.PanicsWithValue(t, ErrMsgNilStorageDriver, func() {
			RegisterStorageDriver("test_nil_driver", nil)
		})
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := OpenStorage("nope", "")
		require.Error(t, err)

		var storageErr *StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, ErrMsgStorageDriverNotFound, storageErr.Message)
		assert.Equal(t, "nope", storageErr.Key)
	})
}

func TestStorageError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *StorageError
		expected string
	}{
		{name: "message only", err: &StorageError{Message: "boom"}, expected: "boom"},
		{name: "locale", err: &StorageError{Message: "boom", Locale: "de"}, expected: "boom: de"},
		{name: "locale and key", err: &StorageError{Message: "boom", Locale: "de", Key: "a.b"}, expected: "boom: de/a.b"},
		{name: "cause", err: &StorageError{Message: "boom", Cause: errors.New("io")}, expected: "boom: io"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestApplyQuery(t *testing.T) {
	messages := []*StoredMessage{
		{Locale: "en", Key: "b"},
		{Locale: "de", Key: "a.x"},
		{Locale: "en", Key: "a.y"},
		{Locale: "en", Key: "a.x"},
	}

	tests := []struct {
		name     string
		query    *CatalogQuery
		expected []string
	}{
		{name: "nil query sorts everything", query: nil, expected: []string{"de/a.x", "en/a.x", "en/a.y", "en/b"}},
		{name: "locale", query: &CatalogQuery{Locale: "en"}, expected: []string{"en/a.x", "en/a.y", "en/b"}},
		{name: "prefix", query: &CatalogQuery{KeyPrefix: "a."}, expected: []string{"de/a.x", "en/a.x", "en/a.y"}},
		{name: "limit", query: &CatalogQuery{Limit: 2}, expected: []string{"de/a.x", "en/a.x"}},
		{name: "offset", query: &CatalogQuery{Offset: 3}, expected: []string{"en/b"}},
		{name: "offset past end", query: &CatalogQuery{Offset: 10}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, addresses(applyQuery(messages, tt.query)))
		})
	}
}

func addresses(messages []*StoredMessage) []string {
	out := make([]string, 0, len(messages))
	for _, msg := range messages {
		out = append(out, msg.Locale+"/"+msg.Key)
	}
	return out
}

// runCatalogStorageContract exercises the behaviour every CatalogStorage shares
func runCatalogStorageContract(t *testing.T, storage CatalogStorage) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := storage.Get(ctx, "en", "missing")
		require.Error(t, err)
		assert.True(t, IsMessageNotFound(err))
	})

	t.Run("put assigns id and timestamps", func(t *testing.T) {
		msg := &StoredMessage{Locale: "en", Key: "greeting", Source: "Hello {name}"}
		require.NoError(t, storage.Put(ctx, msg))
		assert.NotEmpty(t, msg.ID)
		assert.False(t, msg.CreatedAt.IsZero())
		assert.False(t, msg.UpdatedAt.IsZero())

		got, err := storage.Get(ctx, "en", "greeting")
		require.NoError(t, err)
		assert.Equal(t, "Hello {name}", got.Source)
		assert.Equal(t, msg.ID, got.ID)
	})

	t.Run("put replaces and keeps id", func(t *testing.T) {
		first, err := storage.Get(ctx, "en", "greeting")
		require.NoError(t, err)

		require.NoError(t, storage.Put(ctx, &StoredMessage{Locale: "en", Key: "greeting", Source: "Hi {name}"}))

		got, err := storage.Get(ctx, "en", "greeting")
		require.NoError(t, err)
		assert.Equal(t, "Hi {name}", got.Source)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("put validates address", func(t *testing.T) {
		assert.Error(t, storage.Put(ctx, nil))
		assert.Error(t, storage.Put(ctx, &StoredMessage{Key: "k", Source: "x"}))
		assert.Error(t, storage.Put(ctx, &StoredMessage{Locale: "en", Source: "x"}))
	})

	t.Run("list and locales", func(t *testing.T) {
		require.NoError(t, storage.Put(ctx, &StoredMessage{Locale: "de", Key: "greeting", Source: "Hallo {name}"}))
		require.NoError(t, storage.Put(ctx, &StoredMessage{Locale: "en", Key: "inbox.count", Source: "{n} new"}))

		locales, err := storage.Locales(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"de", "en"}, locales)

		all, err := storage.List(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"de/greeting", "en/greeting", "en/inbox.count"}, addresses(all))

		inbox, err := storage.List(ctx, &CatalogQuery{Locale: "en", KeyPrefix: "inbox."})
		require.NoError(t, err)
		assert.Equal(t, []string{"en/inbox.count"}, addresses(inbox))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.Delete(ctx, "de", "greeting"))

		_, err := storage.Get(ctx, "de", "greeting")
		assert.True(t, IsMessageNotFound(err))

		err = storage.Delete(ctx, "de", "greeting")
		assert.True(t, IsMessageNotFound(err))

		locales, err := storage.Locales(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"en"}, locales)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := storage.Get(cancelled, "en", "greeting")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryStorage_Contract(t *testing.T) {
	storage := NewMemoryStorage()
	defer storage.Close()

	runCatalogStorageContract(t, storage)
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, storage.Put(ctx, &StoredMessage{Locale: "en", Key: "k", Source: "original"}))

	got, err := storage.Get(ctx, "en", "k")
	require.NoError(t, err)
	got.Source = "mutated"

	again, err := storage.Get(ctx, "en", "k")
	require.NoError(t, err)
	assert.Equal(t, "original", again.Source)
}

func TestMemoryStorage_Closed(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()
	require.NoError(t, storage.Close())

	_, err := storage.Get(ctx, "en", "k")
	assert.Contains(t, err.Error(), ErrMsgStorageClosed)
	assert.Error(t, storage.Put(ctx, &StoredMessage{Locale: "en", Key: "k"}))
	assert.Error(t, storage.Delete(ctx, "en", "k"))
	_, err = storage.List(ctx, nil)
	assert.Error(t, err)
	_, err = storage.Locales(ctx)
	assert.Error(t, err)
}

func TestMemoryStorage_Concurrent(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = storage.Put(ctx, &StoredMessage{Locale: "en", Key: "k", Source: "x"})
		}()
		go func() {
			defer wg.Done()
			_, _ = storage.List(ctx, nil)
		}()
	}
	wg.Wait()

	all, err := storage.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemoryStorageDriver_Open(t *testing.T) {
	storage, err := OpenStorage(StorageDriverNameMemory, "ignored")
	require.NoError(t, err)
	defer storage.Close()

	_, ok := storage.(*MemoryStorage)
	assert.True(t, ok)
}
