package msgfmt

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/itsatony/go-msgfmt/internal"
)

// PluralFormat selects a sub-message by the plural category of a numeric argument.
//
// Selection, for n = value - offset:
//  1. a literal branch registered for exactly n;
//  2. the branch of Classify(n), when set;
//  3. the mandatory other branch.
//
// The chosen branch renders with a context whose placeholder is n.
type PluralFormat struct {
	variable   string
	classifier PluralClassifier
	offset     int64
	literals   map[int64]*Message
	categories [pluralCategoryCount]*Message
}

// PluralOption configures a PluralFormat
type PluralOption func(*PluralFormat)

// NewPluralFormat creates a plural node. other is the mandatory fallback;
// nil is treated as an empty message. The classifier defaults to EnglishCardinal.
func NewPluralFormat(variable string, other *Message, opts ...PluralOption) *PluralFormat {
	p := &PluralFormat{
		variable:   variable,
		classifier: EnglishCardinal,
		literals:   make(map[int64]*Message),
	}
	p.categories[PluralOther] = orEmpty(other)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithOffset sets the value subtracted before matching
func WithOffset(offset int64) PluralOption {
	return func(p *PluralFormat) {
		p.offset = offset
	}
}

// WithLiteral registers an exact-value branch ("=n")
func WithLiteral(n int64, msg *Message) PluralOption {
	return func(p *PluralFormat) {
		p.literals[n] = orEmpty(msg)
	}
}

// WithCategory sets the branch for a plural category.
// Setting PluralOther replaces the fallback branch.
func WithCategory(category PluralCategory, msg *Message) PluralOption {
	return func(p *PluralFormat) {
		if category < 0 || int(category) >= pluralCategoryCount {
			return
		}
		p.categories[category] = orEmpty(msg)
	}
}

// WithPluralClassifier replaces the classifier. nil keeps the current one.
func WithPluralClassifier(classifier PluralClassifier) PluralOption {
	return func(p *PluralFormat) {
		if classifier != nil {
			p.classifier = classifier
		}
	}
}

func (*PluralFormat) node() {}

// Variable returns the argument name the node reads
func (p *PluralFormat) Variable() string {
	return p.variable
}

// Offset returns the offset subtracted before matching
func (p *PluralFormat) Offset() int64 {
	return p.offset
}

// Classifier returns the plural classifier in use
func (p *PluralFormat) Classifier() PluralClassifier {
	return p.classifier
}

// Other returns the fallback branch
func (p *PluralFormat) Other() *Message {
	return p.categories[PluralOther]
}

// Category returns the branch for category, or nil when unset
func (p *PluralFormat) Category(category PluralCategory) *Message {
	if category < 0 || int(category) >= pluralCategoryCount {
		return nil
	}
	return p.categories[category]
}

// Literal returns the exact-value branch for n, or nil when unset
func (p *PluralFormat) Literal(n int64) *Message {
	return p.literals[n]
}

// Adjust returns value - offset. It reports false when the subtraction would
// wrap around the int64 range.
func (p *PluralFormat) Adjust(value int64) (int64, bool) {
	if (p.offset > 0 && value < math.MinInt64+p.offset) ||
		(p.offset < 0 && value > math.MaxInt64+p.offset) {
		return 0, false
	}
	return value - p.offset, true
}

// Select returns the branch chosen for the raw argument value together with
// the offset-adjusted value the branch is rendered with. Values rejected by
// Adjust wrap; Render checks Adjust first.
func (p *PluralFormat) Select(value int64) (*Message, int64) {
	n := value - p.offset
	if msg, ok := p.literals[n]; ok {
		return msg, n
	}
	if msg := p.Category(p.classifier.Classify(n)); msg != nil {
		return msg, n
	}
	return p.categories[PluralOther], n
}

// String returns the node in template syntax
func (p *PluralFormat) String() string {
	var sb strings.Builder
	writeFormatHead(&sb, p.variable, internal.KeywordPlural)
	if p.offset != 0 {
		sb.WriteString(internal.KeywordOffset)
		sb.WriteString(strconv.FormatInt(p.offset, 10))
		sb.WriteByte(internal.CharSpace)
	}

	literals := make([]int64, 0, len(p.literals))
	for n := range p.literals {
		literals = append(literals, n)
	}
	sort.Slice(literals, func(i, j int) bool { return literals[i] < literals[j] })
	for _, n := range literals {
		writeBranch(&sb, string(internal.CharEquals)+strconv.FormatInt(n, 10), p.literals[n])
		sb.WriteByte(internal.CharSpace)
	}

	for category, msg := range p.categories {
		if msg == nil || PluralCategory(category) == PluralOther {
			continue
		}
		writeBranch(&sb, PluralCategory(category).String(), msg)
		sb.WriteByte(internal.CharSpace)
	}
	writeBranch(&sb, PluralOther.String(), p.Other())
	sb.WriteByte(internal.CharCloseBrace)
	return sb.String()
}

func orEmpty(msg *Message) *Message {
	if msg == nil {
		return NewMessage()
	}
	return msg
}
