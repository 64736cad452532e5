package msgfmt

import (
	"strings"

	"github.com/itsatony/go-msgfmt/internal"
)

// Node is one constituent of a Message.
// The set of nodes is closed: *PlainText, *SimpleFormat, *PlaceholderFormat,
// *PluralFormat and *SelectFormat. String returns the node in template syntax.
type Node interface {
	String() string
	node()
}

// PlainText writes its text verbatim
type PlainText struct {
	Text string
}

// NewPlainText creates a plain text node
func NewPlainText(text string) *PlainText {
	return &PlainText{Text: text}
}

func (*PlainText) node() {}

// String returns the text itself
func (n *PlainText) String() string {
	return n.Text
}

// SimpleFormat writes the display form of a named argument
type SimpleFormat struct {
	Variable string
}

// NewSimpleFormat creates a {variable} node
func NewSimpleFormat(variable string) *SimpleFormat {
	return &SimpleFormat{Variable: variable}
}

func (*SimpleFormat) node() {}

// String returns "{variable}"
func (n *SimpleFormat) String() string {
	return string(internal.CharOpenBrace) + n.Variable + string(internal.CharCloseBrace)
}

// PlaceholderFormat writes the plural value of the enclosing plural branch ('#')
type PlaceholderFormat struct{}

// NewPlaceholderFormat creates a '#' node
func NewPlaceholderFormat() *PlaceholderFormat {
	return &PlaceholderFormat{}
}

func (*PlaceholderFormat) node() {}

// String returns "#"
func (n *PlaceholderFormat) String() string {
	return string(internal.CharPound)
}

// writeFormatHead writes "{variable, keyword, "
func writeFormatHead(sb *strings.Builder, variable, keyword string) {
	sb.WriteByte(internal.CharOpenBrace)
	sb.WriteString(variable)
	sb.WriteString(", ")
	sb.WriteString(keyword)
	sb.WriteString(", ")
}

// writeBranch writes "selector {body}"
func writeBranch(sb *strings.Builder, selector string, body *Message) {
	sb.WriteString(selector)
	sb.WriteString(" {")
	sb.WriteString(body.String())
	sb.WriteByte(internal.CharCloseBrace)
}
