package msgfmt

import "strconv"

// Context is the ambient render state: the locale tag and, inside a plural
// branch, the resolved plural value that '#' prints.
//
// Context is a small value type. Derived contexts are copies; a Context is
// never changed in place, so one render never observes another's state.
type Context struct {
	// LanguageTag is carried for classifier selection; the core treats it as opaque.
	LanguageTag string

	placeholder    int64
	hasPlaceholder bool
}

// NewContext returns a context for tag with no placeholder value
func NewContext(tag string) Context {
	return Context{LanguageTag: tag}
}

// DefaultContext returns a context for DefaultLanguageTag
func DefaultContext() Context {
	return NewContext(DefaultLanguageTag)
}

// WithPlaceholder returns a copy of c whose placeholder value is n
func (c Context) WithPlaceholder(n int64) Context {
	c.placeholder = n
	c.hasPlaceholder = true
	return c
}

// WithLanguageTag returns a copy of c carrying tag
func (c Context) WithLanguageTag(tag string) Context {
	c.LanguageTag = tag
	return c
}

// Placeholder returns the current plural value and whether one is set
func (c Context) Placeholder() (int64, bool) {
	return c.placeholder, c.hasPlaceholder
}

// String returns a debug representation
func (c Context) String() string {
	if !c.hasPlaceholder {
		return "Context{" + c.LanguageTag + "}"
	}
	return "Context{" + c.LanguageTag + " #=" + strconv.FormatInt(c.placeholder, 10) + "}"
}
