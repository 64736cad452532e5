package msgfmt

import (
	"context"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// BundleOption is a functional option for configuring a Bundle.
type BundleOption func(*bundleConfig)

// bundleConfig holds the configuration for a Bundle.
type bundleConfig struct {
	fallbackLocale string
	registry       *ClassifierRegistry
	maxDepth       int
	logger         *zap.Logger
}

// defaultBundleConfig returns the default bundle configuration.
func defaultBundleConfig() *bundleConfig {
	return &bundleConfig{
		fallbackLocale: DefaultLanguageTag,
		registry:       nil,
		maxDepth:       DefaultMaxDepth,
		logger:         nil,
	}
}

// WithFallbackLocale sets the locale tried after the requested locale and its parents.
// Default: "en". An empty string disables the fallback.
func WithFallbackLocale(locale string) BundleOption {
	return func(c *bundleConfig) {
		c.fallbackLocale = locale
	}
}

// WithClassifierRegistry sets the registry that picks plural classifiers per locale.
// Default: DefaultClassifierRegistry()
func WithClassifierRegistry(registry *ClassifierRegistry) BundleOption {
	return func(c *bundleConfig) {
		c.registry = registry
	}
}

// WithBundleMaxDepth sets the nesting limit used when parsing catalog messages.
// Default: 32
func WithBundleMaxDepth(depth int) BundleOption {
	return func(c *bundleConfig) {
		c.maxDepth = depth
	}
}

// WithBundleLogger sets the logger for the bundle.
// Default: nil (no logging)
func WithBundleLogger(logger *zap.Logger) BundleOption {
	return func(c *bundleConfig) {
		c.logger = logger
	}
}

// Bundle serves parsed messages by locale and key from a CatalogStorage.
//
// Lookups try the requested locale, then its parent locales
// ("de-AT" then "de"), then the fallback locale. Parsed messages are cached
// per resolved locale and key; Put and Invalidate keep the cache coherent for
// writes made through the bundle.
//
// Bundle is safe for concurrent use.
type Bundle struct {
	storage  CatalogStorage
	config   *bundleConfig
	registry *ClassifierRegistry
	logger   *zap.Logger

	mu    sync.RWMutex
	cache map[bundleCacheKey]*Message
}

type bundleCacheKey struct {
	locale string
	key    string
}

// NewBundle creates a bundle reading from storage.
func NewBundle(storage CatalogStorage, opts ...BundleOption) *Bundle {
	config := defaultBundleConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := config.registry
	if registry == nil {
		registry = DefaultClassifierRegistry()
	}

	logger.Debug(LogMsgBundleCreated, zap.String(LogFieldFallback, config.fallbackLocale))
	return &Bundle{
		storage:  storage,
		config:   config,
		registry: registry,
		logger:   logger,
		cache:    make(map[bundleCacheKey]*Message),
	}
}

// Storage returns the underlying catalog storage.
func (b *Bundle) Storage() CatalogStorage {
	return b.storage
}

// Message returns the parsed message for key together with the locale it was found in.
func (b *Bundle) Message(ctx context.Context, locale, key string) (*Message, string, error) {
	for i, candidate := range b.candidates(locale) {
		msg, err := b.load(ctx, candidate, key)
		if err != nil {
			if IsMessageNotFound(err) {
				continue
			}
			return nil, "", err
		}
		if i > 0 {
			b.logger.Debug(LogMsgLocaleFallback,
				zap.String(LogFieldLocale, locale),
				zap.String(LogFieldFallback, candidate),
				zap.String(LogFieldKey, key))
		}
		return msg, candidate, nil
	}
	return nil, "", NewMessageNotFoundError(locale, key)
}

// Render renders the message for key to w. The render context carries the
// locale the message was found in.
func (b *Bundle) Render(ctx context.Context, w io.Writer, locale, key string, args *Args) error {
	msg, resolved, err := b.Message(ctx, locale, key)
	if err != nil {
		return err
	}
	return msg.Render(NewContext(resolved), w, args)
}

// RenderToString renders the message for key into a string.
func (b *Bundle) RenderToString(ctx context.Context, locale, key string, args *Args) (string, error) {
	var sb strings.Builder
	if err := b.Render(ctx, &sb, locale, key, args); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Put parses msg.Source for validation, stores it and drops the cached entry.
func (b *Bundle) Put(ctx context.Context, msg *StoredMessage) error {
	if err := validateStoredMessage(msg); err != nil {
		return err
	}
	if _, err := b.parse(msg.Locale, msg.Source); err != nil {
		return err
	}
	if err := b.storage.Put(ctx, msg); err != nil {
		return err
	}
	b.Invalidate(msg.Locale, msg.Key)
	return nil
}

// Preload parses every message of the given locales into the cache, one
// goroutine per locale. With no locales, all locales in storage are loaded.
// The first parse or storage error cancels the remaining work and is returned.
func (b *Bundle) Preload(ctx context.Context, locales ...string) error {
	if len(locales) == 0 {
		all, err := b.storage.Locales(ctx)
		if err != nil {
			return err
		}
		locales = all
	}
	b.logger.Debug(LogMsgPreloadStart, zap.Strings(LogFieldLocales, locales))

	g, gctx := errgroup.WithContext(ctx)
	for _, locale := range locales {
		locale := locale
		g.Go(func() error {
			stored, err := b.storage.List(gctx, &CatalogQuery{Locale: locale})
			if err != nil {
				return err
			}
			for _, sm := range stored {
				msg, err := b.parse(sm.Locale, sm.Source)
				if err != nil {
					return err
				}
				b.store(sm.Locale, sm.Key, msg)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b.logger.Debug(LogMsgPreloadComplete, zap.Int(LogFieldCount, b.CachedCount()))
	return nil
}

// MatchLocale picks the best available catalog locale for the caller's
// preferences. Each preference may be a single tag or an Accept-Language
// header value. The fallback locale is returned when nothing matches.
func (b *Bundle) MatchLocale(ctx context.Context, preferences ...string) (string, error) {
	available, err := b.storage.Locales(ctx)
	if err != nil {
		return "", err
	}

	supported := make([]language.Tag, 0, len(available))
	names := make([]string, 0, len(available))
	for _, locale := range available {
		tag, err := language.Parse(locale)
		if err != nil {
			continue
		}
		supported = append(supported, tag)
		names = append(names, locale)
	}
	if len(supported) == 0 {
		return b.config.fallbackLocale, nil
	}

	var desired []language.Tag
	for _, pref := range preferences {
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		desired = append(desired, tags...)
	}
	if len(desired) == 0 {
		return b.config.fallbackLocale, nil
	}

	_, index, confidence := language.NewMatcher(supported).Match(desired...)
	if confidence == language.No {
		return b.config.fallbackLocale, nil
	}
	return names[index], nil
}

// Invalidate drops the cached message for locale and key.
func (b *Bundle) Invalidate(locale, key string) {
	b.mu.Lock()
	delete(b.cache, bundleCacheKey{locale: locale, key: key})
	b.mu.Unlock()
	b.logger.Debug(LogMsgCacheInvalidated, zap.String(LogFieldLocale, locale), zap.String(LogFieldKey, key))
}

// InvalidateAll empties the cache.
func (b *Bundle) InvalidateAll() {
	b.mu.Lock()
	b.cache = make(map[bundleCacheKey]*Message)
	b.mu.Unlock()
	b.logger.Debug(LogMsgCacheInvalidated)
}

// CachedCount returns the number of cached messages.
func (b *Bundle) CachedCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.cache)
}

// load returns the message for one concrete locale, from cache or storage.
func (b *Bundle) load(ctx context.Context, locale, key string) (*Message, error) {
	cacheKey := bundleCacheKey{locale: locale, key: key}

	b.mu.RLock()
	msg, ok := b.cache[cacheKey]
	b.mu.RUnlock()
	if ok {
		b.logger.Debug(LogMsgMessageCacheHit, zap.String(LogFieldLocale, locale), zap.String(LogFieldKey, key))
		return msg, nil
	}

	stored, err := b.storage.Get(ctx, locale, key)
	if err != nil {
		return nil, err
	}
	msg, err = b.parse(locale, stored.Source)
	if err != nil {
		return nil, err
	}
	b.store(locale, key, msg)

	b.logger.Debug(LogMsgMessageParsed,
		zap.String(LogFieldLocale, locale),
		zap.String(LogFieldKey, key),
		zap.Int(LogFieldNodes, msg.Len()))
	return msg, nil
}

func (b *Bundle) store(locale, key string, msg *Message) {
	b.mu.Lock()
	b.cache[bundleCacheKey{locale: locale, key: key}] = msg
	b.mu.Unlock()
}

func (b *Bundle) parse(locale, source string) (*Message, error) {
	return Parse(source,
		WithClassifier(b.registry.Lookup(locale)),
		WithMaxDepth(b.config.maxDepth),
		WithLogger(b.logger))
}

// candidates lists the locales to try for locale, most specific first, without duplicates.
func (b *Bundle) candidates(locale string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(l string) {
		if l != "" && !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}

	add(locale)
	if tag, err := language.Parse(locale); err == nil {
		for t := tag; t != language.Und; t = t.Parent() {
			add(t.String())
		}
	}
	add(b.config.fallbackLocale)
	return out
}
