package msgfmt

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FilesystemStorage stores one catalog file per locale in a directory.
// Files are YAML or TOML; nested tables are flattened into dotted keys.
//
// Directory structure:
//
//	<root>/
//	  en.yaml
//	  de.toml
//	  pt-BR.yml
//
// Put and Delete rewrite the whole locale file in its original format with
// flat keys. New locales are written as YAML.
type FilesystemStorage struct {
	mu     sync.RWMutex
	root   string
	logger *zap.Logger
	closed bool
}

// catalogFormat is the encoding of a catalog file
type catalogFormat int

const (
	catalogFormatYAML catalogFormat = iota
	catalogFormatTOML
)

// catalogExtensions lists recognised extensions in lookup order
var catalogExtensions = []string{CatalogExtYAML, CatalogExtYML, CatalogExtTOML}

// filesystemIDNamespace seeds the name-based UUIDs of file-backed messages
var filesystemIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:msgfmt:filesystem"))

// FilesystemStorageDriver is the driver for creating FilesystemStorage instances.
type FilesystemStorageDriver struct{}

func init() {
	RegisterStorageDriver(StorageDriverNameFilesystem, &FilesystemStorageDriver{})
}

// Open creates a new FilesystemStorage instance.
// The connection string is the root directory path.
func (d *FilesystemStorageDriver) Open(connectionString string) (CatalogStorage, error) {
	return NewFilesystemStorage(connectionString, nil)
}

// NewFilesystemStorage creates a filesystem-backed catalog storage.
// The root directory will be created if it doesn't exist.
func NewFilesystemStorage(root string, logger *zap.Logger) (*FilesystemStorage, error) {
	if root == "" {
		return nil, &StorageError{Message: ErrMsgInvalidStorageRoot}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(root, FilesystemDirPerm); err != nil {
		return nil, &StorageError{
			Message: ErrMsgCreateStorageDir,
			Key:     root,
			Cause:   err,
		}
	}

	return &FilesystemStorage{
		root:   root,
		logger: logger,
	}, nil
}

// Get retrieves the message for locale and key.
func (s *FilesystemStorage) Get(ctx context.Context, locale, key string) (*StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateLocaleForFilesystem(locale); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	file, err := s.loadCatalog(locale)
	if err != nil {
		return nil, err
	}
	source, ok := file.entries[key]
	if !ok {
		return nil, NewMessageNotFoundError(locale, key)
	}
	return file.message(locale, key, source), nil
}

// Put stores msg in the locale's catalog file.
func (s *FilesystemStorage) Put(ctx context.Context, msg *StoredMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateStoredMessage(msg); err != nil {
		return err
	}
	if err := validateLocaleForFilesystem(msg.Locale); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	file, err := s.loadCatalog(msg.Locale)
	if err != nil {
		return err
	}
	file.entries[msg.Key] = msg.Source
	if err := s.writeCatalog(file); err != nil {
		return err
	}

	stored := file.message(msg.Locale, msg.Key, msg.Source)
	msg.ID = stored.ID
	msg.CreatedAt = stored.CreatedAt
	msg.UpdatedAt = stored.UpdatedAt
	return nil
}

// Delete removes the message from the locale's catalog file.
// The file is removed when its last message is deleted.
func (s *FilesystemStorage) Delete(ctx context.Context, locale, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateLocaleForFilesystem(locale); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStorageClosedError()
	}

	file, err := s.loadCatalog(locale)
	if err != nil {
		return err
	}
	if _, ok := file.entries[key]; !ok {
		return NewMessageNotFoundError(locale, key)
	}
	delete(file.entries, key)

	if len(file.entries) == 0 {
		if err := os.Remove(file.path); err != nil {
			return &StorageError{Message: ErrMsgWriteCatalogFile, Locale: locale, Cause: err}
		}
		return nil
	}
	return s.writeCatalog(file)
}

// List returns messages matching the query.
func (s *FilesystemStorage) List(ctx context.Context, query *CatalogQuery) ([]*StoredMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}

	locales, err := s.localesInternal()
	if err != nil {
		return nil, err
	}

	var all []*StoredMessage
	for _, locale := range locales {
		if query != nil && query.Locale != "" && query.Locale != locale {
			continue
		}
		file, err := s.loadCatalog(locale)
		if err != nil {
			return nil, err
		}
		for key, source := range file.entries {
			all = append(all, file.message(locale, key, source))
		}
	}
	return applyQuery(all, query), nil
}

// Locales returns the sorted locales that have a catalog file.
func (s *FilesystemStorage) Locales(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStorageClosedError()
	}
	return s.localesInternal()
}

// Close marks the storage closed. Files are left untouched.
func (s *FilesystemStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// localesInternal lists locales from file names. Caller must hold the lock.
func (s *FilesystemStorage) localesInternal() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, &StorageError{Message: ErrMsgReadStorageDir, Key: s.root, Cause: err}
	}

	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if _, ok := formatForExtension(ext); !ok {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ext)
		if err := validateLocaleForFilesystem(locale); err != nil {
			s.logger.Debug(LogMsgCatalogSkipped, zap.String(LogFieldPath, entry.Name()))
			continue
		}
		seen[locale] = true
	}

	locales := make([]string, 0, len(seen))
	for locale := range seen {
		locales = append(locales, locale)
	}
	sort.Strings(locales)
	return locales, nil
}

// catalogFile is the decoded content of one locale file
type catalogFile struct {
	path    string
	format  catalogFormat
	modTime time.Time
	entries map[string]string
}

func (f *catalogFile) message(locale, key, source string) *StoredMessage {
	return &StoredMessage{
		ID:        uuid.NewSHA1(filesystemIDNamespace, []byte(locale+"/"+key)).String(),
		Locale:    locale,
		Key:       key,
		Source:    source,
		CreatedAt: f.modTime,
		UpdatedAt: f.modTime,
	}
}

// loadCatalog reads the file for locale. A missing file yields an empty YAML catalog.
func (s *FilesystemStorage) loadCatalog(locale string) (*catalogFile, error) {
	for _, ext := range catalogExtensions {
		path := filepath.Join(s.root, locale+ext)
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, &StorageError{Message: ErrMsgReadCatalogFile, Locale: locale, Cause: err}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &StorageError{Message: ErrMsgReadCatalogFile, Locale: locale, Cause: err}
		}

		format, _ := formatForExtension(ext)
		entries, skipped, err := decodeCatalog(data, format)
		if err != nil {
			return nil, &StorageError{Message: ErrMsgDecodeCatalogFile, Locale: locale, Cause: err}
		}
		for _, key := range skipped {
			s.logger.Warn(LogMsgCatalogValueSkipped,
				zap.String(LogFieldPath, path),
				zap.String(LogFieldKey, key))
		}

		s.logger.Debug(LogMsgCatalogLoaded,
			zap.String(LogFieldPath, path),
			zap.Int(LogFieldCount, len(entries)))
		return &catalogFile{
			path:    path,
			format:  format,
			modTime: info.ModTime(),
			entries: entries,
		}, nil
	}

	return &catalogFile{
		path:    filepath.Join(s.root, locale+CatalogExtYAML),
		format:  catalogFormatYAML,
		modTime: time.Now(),
		entries: make(map[string]string),
	}, nil
}

// writeCatalog encodes file.entries in the file's format and refreshes modTime.
func (s *FilesystemStorage) writeCatalog(file *catalogFile) error {
	data, err := encodeCatalog(file.entries, file.format)
	if err != nil {
		return &StorageError{Message: ErrMsgWriteCatalogFile, Key: file.path, Cause: err}
	}
	if err := os.WriteFile(file.path, data, FilesystemFilePerm); err != nil {
		return &StorageError{Message: ErrMsgWriteCatalogFile, Key: file.path, Cause: err}
	}
	if info, err := os.Stat(file.path); err == nil {
		file.modTime = info.ModTime()
	}
	return nil
}

func formatForExtension(ext string) (catalogFormat, bool) {
	switch ext {
	case CatalogExtYAML, CatalogExtYML:
		return catalogFormatYAML, true
	case CatalogExtTOML:
		return catalogFormatTOML, true
	}
	return catalogFormatYAML, false
}

// decodeCatalog returns the flattened entries of a catalog file and the keys
// whose values could not be used as message sources.
func decodeCatalog(data []byte, format catalogFormat) (map[string]string, []string, error) {
	raw := make(map[string]any)
	switch format {
	case catalogFormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, nil, err
		}
	}

	entries := make(map[string]string)
	var skipped []string
	flattenCatalog("", raw, entries, &skipped)
	sort.Strings(skipped)
	return entries, skipped, nil
}

// flattenCatalog joins nested table keys with CatalogKeySep. Numbers and
// booleans are kept in their textual form; lists and empty values are skipped.
func flattenCatalog(prefix string, raw map[string]any, out map[string]string, skipped *[]string) {
	for k, v := range raw {
		key := k
		if prefix != "" {
			key = prefix + CatalogKeySep + k
		}
		switch value := v.(type) {
		case map[string]any:
			flattenCatalog(key, value, out, skipped)
		default:
			if source, ok := catalogScalar(value); ok {
				out[key] = source
			} else {
				*skipped = append(*skipped, key)
			}
		}
	}
}

func catalogScalar(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, true
	case bool:
		return strconv.FormatBool(value), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case uint64:
		return strconv.FormatUint(value, 10), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	}
	return "", false
}

func encodeCatalog(entries map[string]string, format catalogFormat) ([]byte, error) {
	if format == catalogFormatTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(entries); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(entries)
}

// validateLocaleForFilesystem rejects locales that are not language tags or
// that could escape the root directory.
func validateLocaleForFilesystem(locale string) error {
	if locale == "" {
		return &StorageError{Message: ErrMsgEmptyLocale}
	}
	if strings.Contains(locale, "..") || strings.ContainsAny(locale, "/\\:*?\"<>|") {
		return &StorageError{Message: ErrMsgInvalidLocale, Locale: locale}
	}
	if _, err := language.Parse(locale); err != nil {
		return &StorageError{Message: ErrMsgInvalidLocale, Locale: locale, Cause: err}
	}
	return nil
}
