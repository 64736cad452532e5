package msgfmt

import "github.com/itsatony/go-msgfmt/internal"

// PluralCategory is a CLDR-style grammatical number class
type PluralCategory int

// Plural categories. Other is the mandatory fallback.
const (
	PluralZero PluralCategory = iota
	PluralOne
	PluralTwo
	PluralFew
	PluralMany
	PluralOther

	pluralCategoryCount = int(PluralOther) + 1
)

const pluralCategoryNameUnknown = "unknown"

var pluralCategoryNames = [pluralCategoryCount]string{
	internal.SelectorZero,
	internal.SelectorOne,
	internal.SelectorTwo,
	internal.SelectorFew,
	internal.SelectorMany,
	internal.SelectorOther,
}

// String returns the selector keyword for c ("zero", "one", ..., "other")
func (c PluralCategory) String() string {
	if c < 0 || int(c) >= pluralCategoryCount {
		return pluralCategoryNameUnknown
	}
	return pluralCategoryNames[c]
}

// ParsePluralCategory maps a selector keyword to its category
func ParsePluralCategory(s string) (PluralCategory, bool) {
	for i, name := range pluralCategoryNames {
		if name == s {
			return PluralCategory(i), true
		}
	}
	return PluralOther, false
}

// PluralClassifier maps a number to its plural category.
// Implementations must be pure; they are called during concurrent renders.
type PluralClassifier interface {
	Classify(n int64) PluralCategory
}

// ClassifierFunc adapts a function to PluralClassifier
type ClassifierFunc func(n int64) PluralCategory

// Classify calls f(n)
func (f ClassifierFunc) Classify(n int64) PluralCategory {
	return f(n)
}

// EnglishCardinal is the English cardinal rule: 1 is One, everything else Other.
var EnglishCardinal PluralClassifier = ClassifierFunc(func(n int64) PluralCategory {
	if n == 1 {
		return PluralOne
	}
	return PluralOther
})
