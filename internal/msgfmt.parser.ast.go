package internal

import (
	"fmt"
	"strings"
)

// Node is the interface all AST nodes implement
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// Pos returns the source position of this node
	Pos() Position
	// String returns a human-readable representation
	String() string
}

// MessageNode is a sequence of parts. It is the parse root and the body of every branch.
type MessageNode struct {
	pos      Position
	Children []Node
}

// Type returns NodeTypeMessage
func (n *MessageNode) Type() NodeType {
	return NodeTypeMessage
}

// Pos returns the source position
func (n *MessageNode) Pos() Position {
	return n.pos
}

// String returns a string representation of the message node
func (n *MessageNode) String() string {
	var sb strings.Builder
	sb.WriteString("MessageNode{")
	for i, child := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(child.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// NewMessageNode creates a new message node
func NewMessageNode(children []Node, pos Position) *MessageNode {
	return &MessageNode{
		pos:      pos,
		Children: children,
	}
}

// TextNode represents literal text content
type TextNode struct {
	pos     Position
	Content string
}

// Type returns NodeTypeText
func (n *TextNode) Type() NodeType {
	return NodeTypeText
}

// Pos returns the source position
func (n *TextNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *TextNode) String() string {
	content := n.Content
	if len(content) > MaxStringDisplayLength {
		content = content[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("TextNode{%q @ %s}", content, n.pos)
}

// NewTextNode creates a new text node
func NewTextNode(content string, pos Position) *TextNode {
	return &TextNode{
		pos:     pos,
		Content: content,
	}
}

// ArgumentNode is a simple {name} substitution
type ArgumentNode struct {
	pos  Position
	Name string
}

// Type returns NodeTypeArgument
func (n *ArgumentNode) Type() NodeType {
	return NodeTypeArgument
}

// Pos returns the source position
func (n *ArgumentNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *ArgumentNode) String() string {
	return fmt.Sprintf("ArgumentNode{%s @ %s}", n.Name, n.pos)
}

// NewArgumentNode creates a new argument node
func NewArgumentNode(name string, pos Position) *ArgumentNode {
	return &ArgumentNode{
		pos:  pos,
		Name: name,
	}
}

// PoundNode is a '#' inside a plural branch
type PoundNode struct {
	pos Position
}

// Type returns NodeTypePound
func (n *PoundNode) Type() NodeType {
	return NodeTypePound
}

// Pos returns the source position
func (n *PoundNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *PoundNode) String() string {
	return fmt.Sprintf("PoundNode{@ %s}", n.pos)
}

// NewPoundNode creates a new pound node
func NewPoundNode(pos Position) *PoundNode {
	return &PoundNode{pos: pos}
}

// BranchNode is one "selector {message}" pair of a plural or select format.
type BranchNode struct {
	pos       Position
	Selector  string // "one", "other", "male", "=3", ...
	IsLiteral bool   // Selector had the "=N" form
	Literal   int64  // Parsed N when IsLiteral
	Body      *MessageNode
}

// Type returns NodeTypeBranch
func (n *BranchNode) Type() NodeType {
	return NodeTypeBranch
}

// Pos returns the source position
func (n *BranchNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *BranchNode) String() string {
	return fmt.Sprintf("BranchNode{%s: %s}", n.Selector, n.Body.String())
}

// NewBranchNode creates a keyword branch
func NewBranchNode(selector string, body *MessageNode, pos Position) *BranchNode {
	return &BranchNode{
		pos:      pos,
		Selector: selector,
		Body:     body,
	}
}

// NewLiteralBranchNode creates an "=N" branch
func NewLiteralBranchNode(selector string, literal int64, body *MessageNode, pos Position) *BranchNode {
	return &BranchNode{
		pos:       pos,
		Selector:  selector,
		IsLiteral: true,
		Literal:   literal,
		Body:      body,
	}
}

// PluralNode is {name, plural, offset:N sel {..} ...}
type PluralNode struct {
	pos      Position
	Name     string
	Offset   int64
	Branches []*BranchNode
}

// Type returns NodeTypePlural
func (n *PluralNode) Type() NodeType {
	return NodeTypePlural
}

// Pos returns the source position
func (n *PluralNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *PluralNode) String() string {
	return fmt.Sprintf("PluralNode{%s offset=%d branches=%d @ %s}", n.Name, n.Offset, len(n.Branches), n.pos)
}

// NewPluralNode creates a new plural node
func NewPluralNode(name string, offset int64, branches []*BranchNode, pos Position) *PluralNode {
	return &PluralNode{
		pos:      pos,
		Name:     name,
		Offset:   offset,
		Branches: branches,
	}
}

// SelectNode is {name, select, key {..} ...}
type SelectNode struct {
	pos      Position
	Name     string
	Branches []*BranchNode
}

// Type returns NodeTypeSelect
func (n *SelectNode) Type() NodeType {
	return NodeTypeSelect
}

// Pos returns the source position
func (n *SelectNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *SelectNode) String() string {
	return fmt.Sprintf("SelectNode{%s branches=%d @ %s}", n.Name, len(n.Branches), n.pos)
}

// NewSelectNode creates a new select node
func NewSelectNode(name string, branches []*BranchNode, pos Position) *SelectNode {
	return &SelectNode{
		pos:      pos,
		Name:     name,
		Branches: branches,
	}
}
