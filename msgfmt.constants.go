package msgfmt

import "time"

// Defaults
const (
	DefaultLanguageTag = "en"
	DefaultMaxDepth    = 32
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Parse errors
	ErrMsgParseFailed   = "message parsing failed"
	ErrMsgIncomplete    = "incomplete message: unbalanced opening brace"
	ErrMsgMustParse     = "MustParse failed"
	ErrMsgInvalidSyntax = "invalid message syntax"

	// Render errors
	ErrMsgMissingArgument     = "argument not supplied"
	ErrMsgTypeMismatch        = "argument has the wrong value type"
	ErrMsgMissingContextValue = "placeholder rendered outside a plural branch"
	ErrMsgOutputFailed        = "writing rendered output failed"
	ErrMsgNilMessage          = "message is nil"
	ErrMsgUnknownNodeFmt      = "msgfmt: unknown node type %T"
	ErrMsgOffsetOverflow      = "plural offset overflows the argument value"

	// Argument errors
	ErrMsgArgumentConversion = "argument value cannot be converted"
	ErrMsgIntegerOverflow    = "integer does not fit a 64-bit signed number"
	ErrMsgNonIntegralNumber  = "number is not integral"
	ErrMsgUnsupportedType    = "unsupported argument type"

	// Classifier registry errors
	ErrMsgInvalidLanguageTag = "invalid language tag"
	ErrMsgNilClassifier      = "classifier is nil"

	// Catalog errors
	ErrMsgMessageNotFound = "message not found"
)

// Error code constants for categorization
const (
	ErrCodeParse    = "MSGFMT_PARSE"
	ErrCodeRender   = "MSGFMT_RENDER"
	ErrCodeArgument = "MSGFMT_ARGUMENT"
	ErrCodeRegistry = "MSGFMT_REGISTRY"
	ErrCodeCatalog  = "MSGFMT_CATALOG"
)

// Error kinds, stored under MetaKeyKind
const (
	ErrKindIncomplete          = "incomplete"
	ErrKindSyntax              = "syntax"
	ErrKindMissingArgument     = "missing_argument"
	ErrKindTypeMismatch        = "type_mismatch"
	ErrKindMissingContextValue = "missing_context_value"
	ErrKindArgumentConversion  = "argument_conversion"
	ErrKindOutput              = "output"
	ErrKindOffsetOverflow      = "offset_overflow"
	ErrKindMessageNotFound     = "message_not_found"
)

// Metadata keys for errors
const (
	MetaKeyKind      = "kind"
	MetaKeyLine      = "line"
	MetaKeyColumn    = "column"
	MetaKeyOffset    = "offset"
	MetaKeyArgument  = "argument"
	MetaKeyExpected  = "expected"
	MetaKeyActual    = "actual"
	MetaKeyValueType = "value_type"
	MetaKeyLocale    = "locale"
	MetaKeyKey       = "key"
	MetaKeyReason    = "reason"
	MetaKeyValue     = "value"
	MetaKeyPluralOff = "plural_offset"
)

// Log messages
const (
	LogMsgBundleCreated        = "bundle created"
	LogMsgMessageParsed        = "message parsed"
	LogMsgMessageCacheHit      = "message cache hit"
	LogMsgLocaleFallback       = "falling back to another locale"
	LogMsgPreloadStart         = "preloading locales"
	LogMsgPreloadComplete      = "preload complete"
	LogMsgCacheInvalidated     = "message cache invalidated"
	LogMsgCatalogLoaded        = "catalog file loaded"
	LogMsgCatalogSkipped       = "catalog file skipped"
	LogMsgCatalogValueSkipped  = "catalog value is not a message, skipped"
	LogMsgClassifierRegistered = "plural classifier registered"
)

// Log field names
const (
	LogFieldLocale   = "locale"
	LogFieldKey      = "key"
	LogFieldFallback = "fallback"
	LogFieldCount    = "count"
	LogFieldPath     = "path"
	LogFieldLocales  = "locales"
	LogFieldNodes    = "node_count"
)

// Storage driver names
const (
	StorageDriverNameMemory     = "memory"
	StorageDriverNameFilesystem = "filesystem"
	StorageDriverNamePostgres   = "postgres"
)

// Catalog file extensions understood by FilesystemStorage
const (
	CatalogExtYAML = ".yaml"
	CatalogExtYML  = ".yml"
	CatalogExtTOML = ".toml"
	CatalogKeySep  = "."
)

// Filesystem storage permissions
const (
	FilesystemDirPerm  = 0o755
	FilesystemFilePerm = 0o644
)

// PostgreSQL defaults
const (
	PostgresTablePrefix            = "msgfmt_"
	PostgresDefaultMaxOpenConns    = 25
	PostgresDefaultMaxIdleConns    = 5
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 30 * time.Second
)
