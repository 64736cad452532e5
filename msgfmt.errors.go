package msgfmt

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// NewIncompleteError creates the error for an opening brace that is never closed
func NewIncompleteError(pos Position) error {
	return withPosition(cuserr.NewValidationError(ErrCodeParse, ErrMsgIncomplete), pos).
		WithMetadata(MetaKeyKind, ErrKindIncomplete)
}

// NewParseError creates a syntax error with position context
func NewParseError(msg string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeParse, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeParse, msg)
	}
	return withPosition(err, pos).WithMetadata(MetaKeyKind, ErrKindSyntax)
}

func withPosition(err *cuserr.CustomError, pos Position) *cuserr.CustomError {
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewMissingArgumentError creates the error for a variable absent from the arguments
func NewMissingArgumentError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyArgument, ErrMsgMissingArgument).
		WithMetadata(MetaKeyKind, ErrKindMissingArgument).
		WithMetadata(MetaKeyArgument, name)
}

// NewTypeMismatchError creates the error for an argument holding the wrong Value kind
func NewTypeMismatchError(name string, expected, actual ValueKind) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgTypeMismatch).
		WithMetadata(MetaKeyKind, ErrKindTypeMismatch).
		WithMetadata(MetaKeyArgument, name).
		WithMetadata(MetaKeyExpected, expected.String()).
		WithMetadata(MetaKeyActual, actual.String())
}

// NewMissingContextValueError creates the error for a placeholder with no plural value in scope
func NewMissingContextValueError() error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgMissingContextValue).
		WithMetadata(MetaKeyKind, ErrKindMissingContextValue)
}

// NewOffsetOverflowError creates the error for a plural value that cannot be offset without wrapping
func NewOffsetOverflowError(name string, value, offset int64) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgOffsetOverflow).
		WithMetadata(MetaKeyKind, ErrKindOffsetOverflow).
		WithMetadata(MetaKeyArgument, name).
		WithMetadata(MetaKeyValue, strconv.FormatInt(value, 10)).
		WithMetadata(MetaKeyPluralOff, strconv.FormatInt(offset, 10))
}

// NewRenderError creates a render error that carries no argument context
func NewRenderError(msg string) error {
	return cuserr.NewValidationError(ErrCodeRender, msg)
}

// NewOutputError wraps a failure of the output writer
func NewOutputError(cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgOutputFailed).
		WithMetadata(MetaKeyKind, ErrKindOutput)
}

// NewArgumentConversionError creates the error for a Go value that cannot become a Value
func NewArgumentConversionError(name string, value any, reason string) error {
	return cuserr.NewValidationError(ErrCodeArgument, ErrMsgArgumentConversion).
		WithMetadata(MetaKeyKind, ErrKindArgumentConversion).
		WithMetadata(MetaKeyArgument, name).
		WithMetadata(MetaKeyValueType, fmt.Sprintf("%T", value)).
		WithMetadata(MetaKeyReason, reason)
}

// NewMessageNotFoundError creates the error for a catalog key with no message in any candidate locale
func NewMessageNotFoundError(locale, key string) error {
	return cuserr.NewNotFoundError(MetaKeyKey, ErrMsgMessageNotFound).
		WithMetadata(MetaKeyKind, ErrKindMessageNotFound).
		WithMetadata(MetaKeyLocale, locale).
		WithMetadata(MetaKeyKey, key)
}

// ErrorKind returns the engine error kind stored on err, or "" for foreign errors.
func ErrorKind(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return ""
	}
	kind, _ := customErr.GetMetadata(MetaKeyKind)
	return kind
}

// ErrorPosition returns the template position stored on a parse error.
func ErrorPosition(err error) (Position, bool) {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return Position{}, false
	}
	line, okLine := metadataInt(customErr, MetaKeyLine)
	column, okColumn := metadataInt(customErr, MetaKeyColumn)
	if !okLine || !okColumn {
		return Position{}, false
	}
	offset, _ := metadataInt(customErr, MetaKeyOffset)
	return Position{Offset: offset, Line: line, Column: column}, true
}

func metadataInt(err *cuserr.CustomError, key string) (int, bool) {
	raw, ok := err.GetMetadata(key)
	if !ok {
		return 0, false
	}
	n, convErr := strconv.Atoi(raw)
	return n, convErr == nil
}

// IsParseError reports whether err is any parse failure.
func IsParseError(err error) bool {
	kind := ErrorKind(err)
	return kind == ErrKindIncomplete || kind == ErrKindSyntax
}

// IsIncomplete reports whether err is an unbalanced opening brace.
func IsIncomplete(err error) bool {
	return ErrorKind(err) == ErrKindIncomplete
}

// IsMissingArgument reports whether err is a missing argument.
func IsMissingArgument(err error) bool {
	return ErrorKind(err) == ErrKindMissingArgument
}

// IsTypeMismatch reports whether err is an argument of the wrong value type.
func IsTypeMismatch(err error) bool {
	return ErrorKind(err) == ErrKindTypeMismatch
}

// IsMissingContextValue reports whether err is a placeholder outside a plural branch.
func IsMissingContextValue(err error) bool {
	return ErrorKind(err) == ErrKindMissingContextValue
}

// IsArgumentConversion reports whether err is an argument value that could not be converted.
func IsArgumentConversion(err error) bool {
	return ErrorKind(err) == ErrKindArgumentConversion
}

// IsOffsetOverflow reports whether err is a plural value too close to the int64 limits for its offset.
func IsOffsetOverflow(err error) bool {
	return ErrorKind(err) == ErrKindOffsetOverflow
}

// IsMessageNotFound reports whether err is a catalog lookup miss.
func IsMessageNotFound(err error) bool {
	return ErrorKind(err) == ErrKindMessageNotFound
}
