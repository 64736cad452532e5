package internal

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ParserConfig holds parser configuration
type ParserConfig struct {
	// MaxDepth bounds the number of nested branch bodies. 0 means unlimited.
	MaxDepth int
}

// Parser turns message template source into an AST.
// It is a recursive descent parser working directly on the source;
// branch bodies are parsed by the same rule as the top-level message.
type Parser struct {
	scanner
	config ParserConfig
	logger *zap.Logger
}

// NewParser creates a parser with the given configuration
func NewParser(source string, config ParserConfig, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldSource, len(source)))
	return &Parser{
		scanner: newScanner(source),
		config:  config,
		logger:  logger,
	}
}

// Parse produces the root message node
func (p *Parser) Parse() (*MessageNode, error) {
	p.logger.Debug(LogMsgParserStart)

	root, err := p.parseMessage(0, false, false)
	if err != nil {
		if perr, ok := err.(*ParserError); ok {
			p.logger.Debug(LogMsgParserFailed,
				zap.String(LogFieldError, perr.Message),
				zap.Int(LogFieldLine, perr.Position.Line),
				zap.Int(LogFieldColumn, perr.Position.Column))
		}
		return nil, err
	}

	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(root.Children)))
	return root, nil
}

// parseMessage parses parts until end of input or, inside a branch body,
// until the closing brace (which is left for the caller to consume).
func (p *Parser) parseMessage(depth int, inBranch, inPlural bool) (*MessageNode, error) {
	start := p.currentPosition()
	var nodes []Node

	for !p.isAtEnd() {
		ch := p.peek()
		switch {
		case ch == CharOpenBrace:
			node, err := p.parseFormat(depth, inPlural)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		case ch == CharCloseBrace && inBranch:
			return NewMessageNode(nodes, start), nil
		case ch == CharPound && inPlural:
			nodes = append(nodes, NewPoundNode(p.currentPosition()))
			p.advance()
		default:
			nodes = append(nodes, p.parseText(inBranch, inPlural))
		}
	}

	return NewMessageNode(nodes, start), nil
}

// parseText consumes a run of plain text
func (p *Parser) parseText(inBranch, inPlural bool) *TextNode {
	pos := p.currentPosition()
	content := p.scanWhile(func(ch byte) bool {
		switch {
		case ch == CharOpenBrace:
			return false
		case ch == CharCloseBrace && inBranch:
			return false
		case ch == CharPound && inPlural:
			return false
		}
		return true
	})
	return NewTextNode(content, pos)
}

// parseFormat parses '{' name (',' keyword ','? body)? '}'
func (p *Parser) parseFormat(depth int, inPlural bool) (Node, error) {
	open := p.currentPosition()
	p.advance() // consume '{'

	p.skipWhitespace()
	namePos := p.currentPosition()
	name := strings.TrimSpace(p.scanWhile(func(ch byte) bool {
		return ch != CharComma && ch != CharCloseBrace && ch != CharOpenBrace
	}))

	if p.isAtEnd() {
		return nil, newIncompleteError(open)
	}
	if p.peek() == CharOpenBrace {
		return nil, newSyntaxError(ErrMsgUnexpectedBrace, p.currentPosition())
	}
	if name == "" {
		return nil, newSyntaxError(ErrMsgEmptyArgumentName, namePos)
	}

	if p.peek() == CharCloseBrace {
		p.advance()
		return NewArgumentNode(name, open), nil
	}

	p.advance() // consume ','
	p.skipWhitespace()
	keywordPos := p.currentPosition()
	keyword := p.scanWhile(isLetter)
	p.skipWhitespace()
	if p.isAtEnd() {
		return nil, newIncompleteError(open)
	}
	if keyword != KeywordPlural && keyword != KeywordSelect {
		return nil, newSyntaxError(ErrMsgUnknownKeyword, keywordPos)
	}

	if p.peek() == CharComma {
		p.advance()
	}

	if p.config.MaxDepth > 0 && depth+1 > p.config.MaxDepth {
		return nil, newSyntaxError(ErrMsgMaxDepthExceeded, open)
	}

	if keyword == KeywordPlural {
		return p.parsePluralBody(name, open, depth)
	}
	return p.parseSelectBody(name, open, depth, inPlural)
}

func (p *Parser) parsePluralBody(name string, open Position, depth int) (Node, error) {
	p.skipWhitespace()

	var offset int64
	if p.matchStr(KeywordOffset) {
		p.advanceN(len(KeywordOffset))
		p.skipWhitespace()
		offsetPos := p.currentPosition()
		raw := p.scanWhile(func(ch byte) bool {
			return !isWhitespace(ch) && ch != CharOpenBrace && ch != CharCloseBrace
		})
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, newSyntaxError(ErrMsgInvalidOffset, offsetPos)
		}
		offset = n
	}

	branches, err := p.parseBranches(open, depth, true, func(selector string, pos Position) (*BranchNode, error) {
		if strings.HasPrefix(selector, string(CharEquals)) {
			n, err := strconv.ParseInt(selector[1:], 10, 64)
			if err != nil {
				return nil, newSyntaxError(ErrMsgInvalidLiteral, pos)
			}
			canonical := string(CharEquals) + strconv.FormatInt(n, 10)
			return NewLiteralBranchNode(canonical, n, nil, pos), nil
		}
		if !isPluralCategory(selector) {
			return nil, newSyntaxError(ErrMsgUnknownCategory, pos)
		}
		return NewBranchNode(selector, nil, pos), nil
	})
	if err != nil {
		return nil, err
	}

	return NewPluralNode(name, offset, branches, open), nil
}

func (p *Parser) parseSelectBody(name string, open Position, depth int, inPlural bool) (Node, error) {
	branches, err := p.parseBranches(open, depth, inPlural, func(selector string, pos Position) (*BranchNode, error) {
		return NewBranchNode(selector, nil, pos), nil
	})
	if err != nil {
		return nil, err
	}
	return NewSelectNode(name, branches, open), nil
}

// parseBranches reads "selector {message}" pairs up to the closing brace of the format.
// makeBranch validates a selector and returns the branch without its body.
func (p *Parser) parseBranches(
	open Position,
	depth int,
	inPlural bool,
	makeBranch func(selector string, pos Position) (*BranchNode, error),
) ([]*BranchNode, error) {
	var branches []*BranchNode
	seen := make(map[string]bool)

	for {
		p.skipWhitespace()
		if p.isAtEnd() {
			return nil, newIncompleteError(open)
		}
		if p.peek() == CharCloseBrace {
			p.advance()
			break
		}

		selectorPos := p.currentPosition()
		selector := p.scanWhile(func(ch byte) bool {
			return !isWhitespace(ch) && ch != CharOpenBrace && ch != CharCloseBrace
		})
		if selector == "" {
			return nil, newSyntaxError(ErrMsgMissingSelector, selectorPos)
		}

		branch, err := makeBranch(selector, selectorPos)
		if err != nil {
			return nil, err
		}
		if seen[branch.Selector] {
			return nil, newSyntaxError(ErrMsgDuplicateSelector, selectorPos)
		}
		seen[branch.Selector] = true

		p.skipWhitespace()
		if p.isAtEnd() {
			return nil, newIncompleteError(open)
		}
		if p.peek() != CharOpenBrace {
			return nil, newSyntaxError(ErrMsgMissingBranchBody, p.currentPosition())
		}

		bodyOpen := p.currentPosition()
		p.advance() // consume '{'
		body, err := p.parseMessage(depth+1, true, inPlural)
		if err != nil {
			return nil, err
		}
		if p.isAtEnd() {
			return nil, newIncompleteError(bodyOpen)
		}
		p.advance() // consume '}'

		branch.Body = body
		branches = append(branches, branch)
	}

	if !seen[SelectorOther] {
		return nil, newSyntaxError(ErrMsgMissingOther, open)
	}
	return branches, nil
}

func isPluralCategory(selector string) bool {
	switch selector {
	case SelectorZero, SelectorOne, SelectorTwo, SelectorFew, SelectorMany, SelectorOther:
		return true
	}
	return false
}

// ParserError represents a parse failure with position.
// Incomplete is set when the input ended before a format was closed.
type ParserError struct {
	Message    string
	Position   Position
	Incomplete bool
}

func (e *ParserError) Error() string {
	return e.Message + " at " + e.Position.String()
}

func newIncompleteError(pos Position) error {
	return &ParserError{
		Message:    ErrMsgUnterminatedFormat,
		Position:   pos,
		Incomplete: true,
	}
}

func newSyntaxError(msg string, pos Position) error {
	return &ParserError{
		Message:  msg,
		Position: pos,
	}
}
