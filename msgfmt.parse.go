package msgfmt

import (
	"errors"
	"fmt"

	"github.com/itsatony/go-msgfmt/internal"
)

// Parse turns template text into a Message.
//
//	msg, err := msgfmt.Parse("{count, plural, one {# file} other {# files}}")
//
// An opening brace without its closing brace fails with an incomplete
// ParseError (see IsIncomplete); the parser never truncates silently.
func Parse(text string, opts ...ParseOption) (*Message, error) {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	parser := internal.NewParser(text, internal.ParserConfig{MaxDepth: cfg.maxDepth}, cfg.logger)
	root, err := parser.Parse()
	if err != nil {
		return nil, convertParserError(err)
	}

	return convertMessage(root, cfg.classifier), nil
}

// MustParse is like Parse but panics on error. Intended for templates known at compile time.
func MustParse(text string, opts ...ParseOption) *Message {
	msg, err := Parse(text, opts...)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", ErrMsgMustParse, err))
	}
	return msg
}

// Format parses text and renders it with args in the default context.
func Format(text string, args *Args) (string, error) {
	msg, err := Parse(text)
	if err != nil {
		return "", err
	}
	return msg.RenderToString(DefaultContext(), args)
}

func convertParserError(err error) error {
	var perr *internal.ParserError
	if !errors.As(err, &perr) {
		return NewParseError(ErrMsgParseFailed, Position{}, err)
	}
	pos := Position(perr.Position)
	if perr.Incomplete {
		return NewIncompleteError(pos)
	}
	return NewParseError(perr.Message, pos, nil)
}

func convertMessage(root *internal.MessageNode, classifier PluralClassifier) *Message {
	nodes := make([]Node, 0, len(root.Children))
	for _, child := range root.Children {
		nodes = append(nodes, convertNode(child, classifier))
	}
	return &Message{nodes: nodes}
}

func convertNode(n internal.Node, classifier PluralClassifier) Node {
	switch node := n.(type) {
	case *internal.TextNode:
		return NewPlainText(node.Content)

	case *internal.ArgumentNode:
		return NewSimpleFormat(node.Name)

	case *internal.PoundNode:
		return NewPlaceholderFormat()

	case *internal.PluralNode:
		opts := []PluralOption{
			WithOffset(node.Offset),
			WithPluralClassifier(classifier),
		}
		var other *Message
		for _, branch := range node.Branches {
			body := convertMessage(branch.Body, classifier)
			switch {
			case branch.IsLiteral:
				opts = append(opts, WithLiteral(branch.Literal, body))
			case branch.Selector == internal.SelectorOther:
				other = body
			default:
				category, _ := ParsePluralCategory(branch.Selector)
				opts = append(opts, WithCategory(category, body))
			}
		}
		return NewPluralFormat(node.Name, other, opts...)

	case *internal.SelectNode:
		opts := make([]SelectOption, 0, len(node.Branches))
		var def *Message
		for _, branch := range node.Branches {
			body := convertMessage(branch.Body, classifier)
			if branch.Selector == internal.SelectorOther {
				def = body
				continue
			}
			opts = append(opts, WithBranch(branch.Selector, body))
		}
		return NewSelectFormat(node.Name, def, opts...)

	default:
		panic(fmt.Sprintf(ErrMsgUnknownNodeFmt, n))
	}
}
