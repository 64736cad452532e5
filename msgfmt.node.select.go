package msgfmt

import (
	"sort"
	"strings"

	"github.com/itsatony/go-msgfmt/internal"
)

// SelectFormat picks a sub-message by exact match of a string argument,
// falling back to the mandatory default branch. It does not touch the context.
type SelectFormat struct {
	variable string
	branches map[string]*Message
	def      *Message
}

// SelectOption configures a SelectFormat
type SelectOption func(*SelectFormat)

// NewSelectFormat creates a select node. def is the mandatory default branch;
// nil is treated as an empty message.
func NewSelectFormat(variable string, def *Message, opts ...SelectOption) *SelectFormat {
	s := &SelectFormat{
		variable: variable,
		branches: make(map[string]*Message),
		def:      orEmpty(def),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithBranch registers the branch for key. The key "other" replaces the default.
func WithBranch(key string, msg *Message) SelectOption {
	return func(s *SelectFormat) {
		if key == internal.SelectorOther {
			s.def = orEmpty(msg)
			return
		}
		s.branches[key] = orEmpty(msg)
	}
}

func (*SelectFormat) node() {}

// Variable returns the argument name the node reads
func (s *SelectFormat) Variable() string {
	return s.variable
}

// Default returns the fallback branch
func (s *SelectFormat) Default() *Message {
	return s.def
}

// Branch returns the branch registered for key, or nil
func (s *SelectFormat) Branch(key string) *Message {
	return s.branches[key]
}

// Keys returns the registered branch keys in sorted order, the default excluded
func (s *SelectFormat) Keys() []string {
	keys := make([]string, 0, len(s.branches))
	for k := range s.branches {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Select returns the branch for value, or the default
func (s *SelectFormat) Select(value string) *Message {
	if msg, ok := s.branches[value]; ok {
		return msg
	}
	return s.def
}

// String returns the node in template syntax
func (s *SelectFormat) String() string {
	var sb strings.Builder
	writeFormatHead(&sb, s.variable, internal.KeywordSelect)
	for _, key := range s.Keys() {
		writeBranch(&sb, key, s.branches[key])
		sb.WriteByte(internal.CharSpace)
	}
	writeBranch(&sb, internal.SelectorOther, s.def)
	sb.WriteByte(internal.CharCloseBrace)
	return sb.String()
}
