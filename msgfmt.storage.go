package msgfmt

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// StoredMessage is one message template in a catalog, addressed by locale and key.
type StoredMessage struct {
	// ID is a UUID assigned by the storage backend.
	ID string `json:"id"`

	// Locale is the BCP 47 tag the message is written for (e.g. "en", "de-AT").
	Locale string `json:"locale"`

	// Key identifies the message within its locale (e.g. "inbox.count").
	Key string `json:"key"`

	// Source is the raw template text.
	Source string `json:"source"`

	// Description is an optional note for translators.
	Description string `json:"description,omitempty"`

	// CreatedAt is when the message was first stored.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the message was last replaced.
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogQuery defines filters for listing messages.
type CatalogQuery struct {
	// Locale filters by exact locale (empty matches all).
	Locale string

	// KeyPrefix filters to keys starting with this prefix.
	KeyPrefix string

	// Limit is the maximum number of results (0 = no limit).
	Limit int

	// Offset is the number of results to skip (for pagination).
	Offset int
}

// CatalogStorage is the interface for pluggable message catalog backends.
// Implementations must be safe for concurrent use.
type CatalogStorage interface {
	// Get retrieves the message for locale and key.
	// Returns an error satisfying IsMessageNotFound if it doesn't exist.
	Get(ctx context.Context, locale, key string) (*StoredMessage, error)

	// Put stores a message, replacing any message with the same locale and key.
	// ID, CreatedAt and UpdatedAt are set by the storage implementation.
	Put(ctx context.Context, msg *StoredMessage) error

	// Delete removes the message for locale and key.
	// Returns an error satisfying IsMessageNotFound if it doesn't exist.
	Delete(ctx context.Context, locale, key string) error

	// List returns messages matching the query, ordered by locale, then key.
	List(ctx context.Context, query *CatalogQuery) ([]*StoredMessage, error)

	// Locales returns the sorted locales that hold at least one message.
	Locales(ctx context.Context) ([]string, error)

	// Close releases any resources held by the storage.
	Close() error
}

// StorageDriver is a factory for creating storage instances.
// Drivers register themselves during init().
type StorageDriver interface {
	// Open creates a new storage instance with the given connection string.
	// The format of the connection string is driver-specific.
	Open(connectionString string) (CatalogStorage, error)
}

// Storage driver registry
var (
	storageDriversMu sync.RWMutex
	storageDrivers   = make(map[string]StorageDriver)
)

// RegisterStorageDriver registers a storage driver by name.
// Panics if driver is nil or a driver with the same name is already registered.
func RegisterStorageDriver(name string, driver StorageDriver) {
	storageDriversMu.Lock()
	defer storageDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilStorageDriver)
	}
	if _, exists := storageDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	storageDrivers[name] = driver
}

// OpenStorage opens a storage connection using the named driver.
//
//	storage, err := msgfmt.OpenStorage("memory", "")
//	storage, err := msgfmt.OpenStorage("filesystem", "./locales")
func OpenStorage(driverName, connectionString string) (CatalogStorage, error) {
	storageDriversMu.RLock()
	driver, ok := storageDrivers[driverName]
	storageDriversMu.RUnlock()

	if !ok {
		return nil, NewStorageDriverNotFoundError(driverName)
	}

	return driver.Open(connectionString)
}

// ListStorageDrivers returns the sorted names of all registered storage drivers.
func ListStorageDrivers() []string {
	storageDriversMu.RLock()
	defer storageDriversMu.RUnlock()

	names := make([]string, 0, len(storageDrivers))
	for name := range storageDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Storage error message constants
const (
	ErrMsgNilStorageDriver        = "storage driver is nil"
	ErrMsgDriverAlreadyRegistered = "storage driver already registered"
	ErrMsgStorageDriverNotFound   = "storage driver not found"
	ErrMsgStorageClosed           = "storage is closed"
	ErrMsgNilStoredMessage        = "stored message is nil"
	ErrMsgEmptyLocale             = "locale cannot be empty"
	ErrMsgEmptyKey                = "message key cannot be empty"
	ErrMsgInvalidLocale           = "locale is not a valid language tag"
	ErrMsgInvalidStorageRoot      = "storage root directory is empty"
	ErrMsgCreateStorageDir        = "failed to create storage directory"
	ErrMsgReadStorageDir          = "failed to read storage directory"
	ErrMsgReadCatalogFile         = "failed to read catalog file"
	ErrMsgWriteCatalogFile        = "failed to write catalog file"
	ErrMsgDecodeCatalogFile       = "failed to decode catalog file"
)

// StorageError represents a storage-related error.
type StorageError struct {
	Message string
	Locale  string
	Key     string
	Cause   error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.Locale != "" || e.Key != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Locale)
		if e.Key != "" {
			sb.WriteString("/")
			sb.WriteString(e.Key)
		}
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageDriverNotFoundError creates an error for a missing storage driver.
func NewStorageDriverNotFoundError(name string) error {
	return &StorageError{
		Message: ErrMsgStorageDriverNotFound,
		Key:     name,
	}
}

// NewStorageClosedError creates an error for operations on closed storage.
func NewStorageClosedError() error {
	return &StorageError{
		Message: ErrMsgStorageClosed,
	}
}

// validateStoredMessage checks the addressing fields every backend relies on.
func validateStoredMessage(msg *StoredMessage) error {
	if msg == nil {
		return &StorageError{Message: ErrMsgNilStoredMessage}
	}
	return validateAddress(msg.Locale, msg.Key)
}

func validateAddress(locale, key string) error {
	if locale == "" {
		return &StorageError{Message: ErrMsgEmptyLocale, Key: key}
	}
	if key == "" {
		return &StorageError{Message: ErrMsgEmptyKey, Locale: locale}
	}
	return nil
}

// copyStoredMessage creates a copy of a stored message.
func copyStoredMessage(msg *StoredMessage) *StoredMessage {
	if msg == nil {
		return nil
	}
	copied := *msg
	return &copied
}

// applyQuery filters, orders and pages messages in memory.
func applyQuery(messages []*StoredMessage, query *CatalogQuery) []*StoredMessage {
	if query == nil {
		query = &CatalogQuery{}
	}

	filtered := make([]*StoredMessage, 0, len(messages))
	for _, msg := range messages {
		if query.Locale != "" && msg.Locale != query.Locale {
			continue
		}
		if query.KeyPrefix != "" && !strings.HasPrefix(msg.Key, query.KeyPrefix) {
			continue
		}
		filtered = append(filtered, copyStoredMessage(msg))
	}

	sort.Slice(filtered, func(i, j int) bool {
		if filtered[i].Locale != filtered[j].Locale {
			return filtered[i].Locale < filtered[j].Locale
		}
		return filtered[i].Key < filtered[j].Key
	})

	if query.Offset > 0 {
		if query.Offset >= len(filtered) {
			return []*StoredMessage{}
		}
		filtered = filtered[query.Offset:]
	}
	if query.Limit > 0 && query.Limit < len(filtered) {
		filtered = filtered[:query.Limit]
	}
	return filtered
}
