package internal

// NodeType identifies AST node types
type NodeType int

// Node type constants
const (
	NodeTypeMessage NodeType = iota
	NodeTypeText
	NodeTypeArgument
	NodeTypePound
	NodeTypePlural
	NodeTypeSelect
	NodeTypeBranch
)

// Node type string names for debugging
const (
	NodeTypeNameMessage  = "MESSAGE"
	NodeTypeNameText     = "TEXT"
	NodeTypeNameArgument = "ARGUMENT"
	NodeTypeNamePound    = "POUND"
	NodeTypeNamePlural   = "PLURAL"
	NodeTypeNameSelect   = "SELECT"
	NodeTypeNameBranch   = "BRANCH"
	NodeTypeNameUnknown  = "UNKNOWN"
)

// String returns the string representation of the node type
func (n NodeType) String() string {
	switch n {
	case NodeTypeMessage:
		return NodeTypeNameMessage
	case NodeTypeText:
		return NodeTypeNameText
	case NodeTypeArgument:
		return NodeTypeNameArgument
	case NodeTypePound:
		return NodeTypeNamePound
	case NodeTypePlural:
		return NodeTypeNamePlural
	case NodeTypeSelect:
		return NodeTypeNameSelect
	case NodeTypeBranch:
		return NodeTypeNameBranch
	default:
		return NodeTypeNameUnknown
	}
}

// Syntax characters
const (
	CharOpenBrace   = '{'
	CharCloseBrace  = '}'
	CharComma       = ','
	CharPound       = '#'
	CharEquals      = '='
	CharMinus       = '-'
	CharPlus        = '+'
	CharSpace       = ' '
	CharTab         = '\t'
	CharNewline     = '\n'
	CharCarriageRet = '\r'
)

// Keywords recognised after the argument name
const (
	KeywordPlural = "plural"
	KeywordSelect = "select"
	KeywordOffset = "offset:"
)

// Plural selectors. Literal selectors are "=" followed by an integer.
const (
	SelectorZero  = "zero"
	SelectorOne   = "one"
	SelectorTwo   = "two"
	SelectorFew   = "few"
	SelectorMany  = "many"
	SelectorOther = "other"
)

// Display limits for node String()
const (
	MaxStringDisplayLength = 50
	TruncatedStringLength  = 47
	TruncationSuffix       = "..."
)

// Error message constants for the parser
const (
	ErrMsgUnterminatedFormat = "unterminated format: missing closing brace"
	ErrMsgEmptyArgumentName  = "argument name cannot be empty"
	ErrMsgUnexpectedBrace    = "unexpected opening brace in argument name"
	ErrMsgUnknownKeyword     = "unknown format keyword"
	ErrMsgMissingSelector    = "expected branch selector"
	ErrMsgUnknownCategory    = "unknown plural category"
	ErrMsgInvalidLiteral     = "invalid literal selector"
	ErrMsgInvalidOffset      = "invalid plural offset"
	ErrMsgDuplicateSelector  = "duplicate branch selector"
	ErrMsgMissingBranchBody  = "expected opening brace of branch body"
	ErrMsgMissingOther       = "missing mandatory other branch"
	ErrMsgMaxDepthExceeded   = "maximum nesting depth exceeded"
)

// Log messages
const (
	LogMsgParserCreated = "parser created"
	LogMsgParserStart   = "starting parse"
	LogMsgParserEnd     = "parse complete"
	LogMsgParserFailed  = "parse failed"
)

// Log field names
const (
	LogFieldSource = "source_length"
	LogFieldNodes  = "node_count"
	LogFieldLine   = "line"
	LogFieldColumn = "column"
	LogFieldError  = "error"
)
