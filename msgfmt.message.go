package msgfmt

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Message is a parsed, renderable template: an ordered sequence of nodes.
// A Message never changes after construction and may be rendered from
// many goroutines at once.
type Message struct {
	nodes []Node
}

// NewMessage creates a message from nodes. The slice is copied; nil nodes are dropped.
func NewMessage(nodes ...Node) *Message {
	copied := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			copied = append(copied, n)
		}
	}
	return &Message{nodes: copied}
}

// Nodes returns a copy of the node sequence
func (m *Message) Nodes() []Node {
	copied := make([]Node, len(m.nodes))
	copy(copied, m.nodes)
	return copied
}

// Len returns the number of top-level nodes
func (m *Message) Len() int {
	return len(m.nodes)
}

// Render writes the message to w. Rendering is fail-fast: the first node
// error aborts the render and is returned; output already written stays written.
func (m *Message) Render(ctx Context, w io.Writer, args *Args) error {
	if m == nil {
		return NewRenderError(ErrMsgNilMessage)
	}
	if err := args.Err(); err != nil {
		return err
	}
	return m.render(ctx, w, args)
}

func (m *Message) render(ctx Context, w io.Writer, args *Args) error {
	for _, n := range m.nodes {
		if err := renderNode(n, ctx, w, args); err != nil {
			return err
		}
	}
	return nil
}

// RenderToString renders into a string. Any render error is returned and the
// partial output discarded.
func (m *Message) RenderToString(ctx Context, args *Args) (string, error) {
	var sb strings.Builder
	if err := m.Render(ctx, &sb, args); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// renderNode dispatches over the closed node set
func renderNode(n Node, ctx Context, w io.Writer, args *Args) error {
	switch node := n.(type) {
	case *PlainText:
		return write(w, node.Text)

	case *SimpleFormat:
		value, ok := args.Get(node.Variable)
		if !ok {
			return NewMissingArgumentError(node.Variable)
		}
		return write(w, value.String())

	case *PlaceholderFormat:
		placeholder, ok := ctx.Placeholder()
		if !ok {
			return NewMissingContextValueError()
		}
		return write(w, strconv.FormatInt(placeholder, 10))

	case *PluralFormat:
		value, ok := args.Get(node.variable)
		if !ok {
			return NewMissingArgumentError(node.variable)
		}
		number, ok := value.Number()
		if !ok {
			return NewTypeMismatchError(node.variable, KindNumber, value.Kind())
		}
		if _, ok := node.Adjust(number); !ok {
			return NewOffsetOverflowError(node.variable, number, node.offset)
		}
		branch, adjusted := node.Select(number)
		return branch.render(ctx.WithPlaceholder(adjusted), w, args)

	case *SelectFormat:
		value, ok := args.Get(node.variable)
		if !ok {
			return NewMissingArgumentError(node.variable)
		}
		str, ok := value.Str()
		if !ok {
			return NewTypeMismatchError(node.variable, KindString, value.Kind())
		}
		return node.Select(str).render(ctx, w, args)

	default:
		panic(fmt.Sprintf(ErrMsgUnknownNodeFmt, n))
	}
}

func write(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	if _, err := io.WriteString(w, s); err != nil {
		return NewOutputError(err)
	}
	return nil
}

// String returns the message in template syntax; parsing it yields an equivalent message
func (m *Message) String() string {
	var sb strings.Builder
	for _, n := range m.nodes {
		sb.WriteString(n.String())
	}
	return sb.String()
}

// ArgumentNames returns the sorted, distinct names of every argument the
// message reads, nested branches included.
func (m *Message) ArgumentNames() []string {
	seen := make(map[string]bool)
	m.collectArguments(seen)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Message) collectArguments(seen map[string]bool) {
	for _, n := range m.nodes {
		switch node := n.(type) {
		case *SimpleFormat:
			seen[node.Variable] = true
		case *PluralFormat:
			seen[node.variable] = true
			for _, msg := range node.literals {
				msg.collectArguments(seen)
			}
			for _, msg := range node.categories {
				if msg != nil {
					msg.collectArguments(seen)
				}
			}
		case *SelectFormat:
			seen[node.variable] = true
			for _, msg := range node.branches {
				msg.collectArguments(seen)
			}
			node.def.collectArguments(seen)
		}
	}
}
