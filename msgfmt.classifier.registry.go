package msgfmt

import (
	"sync"

	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// ClassifierRegistry maps languages to plural classifiers.
// Lookups match on the base language of a BCP 47 tag, so "en-GB" and
// "en" share a classifier. Unknown or malformed tags fall back to English.
// It is safe for concurrent use.
type ClassifierRegistry struct {
	mu       sync.RWMutex
	byBase   map[language.Base]PluralClassifier
	fallback PluralClassifier
	logger   *zap.Logger
}

// NewClassifierRegistry creates a registry with English registered.
func NewClassifierRegistry(logger *zap.Logger) *ClassifierRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	en, _ := language.English.Base()
	return &ClassifierRegistry{
		byBase:   map[language.Base]PluralClassifier{en: EnglishCardinal},
		fallback: EnglishCardinal,
		logger:   logger,
	}
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *ClassifierRegistry
)

// DefaultClassifierRegistry returns the process-wide registry used when no
// registry is configured explicitly.
func DefaultClassifierRegistry() *ClassifierRegistry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewClassifierRegistry(nil)
	})
	return defaultRegistry
}

// Register installs classifier for the base language of tag, replacing any previous one.
func (r *ClassifierRegistry) Register(tag string, classifier PluralClassifier) error {
	if classifier == nil {
		return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilClassifier).
			WithMetadata(MetaKeyLocale, tag)
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return cuserr.WrapStdError(err, ErrCodeRegistry, ErrMsgInvalidLanguageTag).
			WithMetadata(MetaKeyLocale, tag)
	}
	base, _ := parsed.Base()

	r.mu.Lock()
	r.byBase[base] = classifier
	r.mu.Unlock()

	r.logger.Debug(LogMsgClassifierRegistered, zap.String(LogFieldLocale, base.String()))
	return nil
}

// Lookup returns the classifier for tag, or the English classifier when none matches.
func (r *ClassifierRegistry) Lookup(tag string) PluralClassifier {
	classifier, ok := r.find(tag)
	if !ok {
		return r.fallback
	}
	return classifier
}

// Has reports whether a classifier is registered for the base language of tag.
func (r *ClassifierRegistry) Has(tag string) bool {
	_, ok := r.find(tag)
	return ok
}

func (r *ClassifierRegistry) find(tag string) (PluralClassifier, bool) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return nil, false
	}
	base, confidence := parsed.Base()
	if confidence == language.No {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	classifier, ok := r.byBase[base]
	return classifier, ok
}
