package msgfmt

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory implementation of CatalogStorage.
// It is primarily intended for testing and development.
// All data is lost when the process terminates.
type MemoryStorage struct {
	mu       sync.RWMutex
	messages map[string]map[string]*StoredMessage // locale -> key -> message
	closed   bool
}

// MemoryStorageDriver is the driver for creating MemoryStorage instances.
type MemoryStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameMemory, &MemoryStorageDriver{})
}

// Open creates a new MemoryStorage instance.
// The connection string is ignored for memory storage.
func (d *MemoryStorageDriver) Open(connectionString string) (CatalogStorage, error) {
	return NewMemoryStorage(), nil
}

// NewMemoryStorage creates a new in-memory catalog storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		messages: make(map[string]map[string]*StoredMessage),
	}
}

// Get retrieves the message for locale and key.
func (s *MemoryStorage) Get(ctx context.Context, locale, key string) (*StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	msg, ok := s.messages[locale][key]
	if !ok {
		return nil, NewMessageNotFoundError(locale, key)
	}
	return copyStoredMessage(msg), nil
}

// Put stores msg, replacing any message with the same locale and key.
func (s *MemoryStorage) Put(ctx context.Context, msg *StoredMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateStoredMessage(msg); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	now := time.Now()
	byKey, ok := s.messages[msg.Locale]
	if !ok {
		byKey = make(map[string]*StoredMessage)
		s.messages[msg.Locale] = byKey
	}

	if existing, ok := byKey[msg.Key]; ok {
		msg.ID = existing.ID
		msg.CreatedAt = existing.CreatedAt
	} else {
		msg.ID = uuid.NewString()
		msg.CreatedAt = now
	}
	msg.UpdatedAt = now

	byKey[msg.Key] = copyStoredMessage(msg)
	return nil
}

// Delete removes the message for locale and key.
func (s *MemoryStorage) Delete(ctx context.Context, locale, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	byKey, ok := s.messages[locale]
	if !ok {
		return NewMessageNotFoundError(locale, key)
	}
	if _, ok := byKey[key]; !ok {
		return NewMessageNotFoundError(locale, key)
	}

	delete(byKey, key)
	if len(byKey) == 0 {
		delete(s.messages, locale)
	}
	return nil
}

// List returns messages matching the query.
func (s *MemoryStorage) List(ctx context.Context, query *CatalogQuery) ([]*StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	var all []*StoredMessage
	for _, byKey := range s.messages {
		for _, msg := range byKey {
			all = append(all, msg)
		}
	}
	return applyQuery(all, query), nil
}

// Locales returns the sorted locales that hold at least one message.
func (s *MemoryStorage) Locales(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	locales := make([]string, 0, len(s.messages))
	for locale := range s.messages {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales, nil
}

// Close marks the storage closed. Further calls fail.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.messages = nil
	return nil
}
