package msgfmt

import (
	"errors"
	"sort"
)

type namedValue struct {
	name  string
	value Value
}

// Args is the ordered set of named values supplied for one render call.
// Attaching a name that is already present shadows the earlier value;
// lookup always returns the most recently attached match.
//
// A nil *Args is a valid, empty argument list.
type Args struct {
	pairs []namedValue
	errs  []error
}

// Arg starts a new argument list holding name = value.
//
//	args := msgfmt.Arg("name", "Hendrik").Arg("count", 3)
//
// Accepted values are Go integers, strings and Value. A value that cannot be
// converted is remembered and reported by Err and by Message.Render.
func Arg(name string, value any) *Args {
	return (&Args{}).Arg(name, value)
}

// Arg returns a new list holding the pairs of a plus name = value.
// The receiver is never modified, so several lists can branch from one
// shared base, also concurrently. A nil receiver starts a new list.
func (a *Args) Arg(name string, value any) *Args {
	next := &Args{}
	if a != nil {
		// full slice expressions force append to copy instead of sharing capacity
		next.pairs = a.pairs[:len(a.pairs):len(a.pairs)]
		next.errs = a.errs[:len(a.errs):len(a.errs)]
	}
	v, err := convertValue(name, value)
	if err != nil {
		next.errs = append(next.errs, err)
		return next
	}
	next.pairs = append(next.pairs, namedValue{name: name, value: v})
	return next
}

// ArgsFromMap builds an argument list from m, attaching keys in sorted order.
func ArgsFromMap(m map[string]any) *Args {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var args *Args
	for _, k := range keys {
		args = args.Arg(k, m[k])
	}
	if args == nil {
		return &Args{}
	}
	return args
}

// Get returns the most recently attached value for name.
func (a *Args) Get(name string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	for i := len(a.pairs) - 1; i >= 0; i-- {
		if a.pairs[i].name == name {
			return a.pairs[i].value, true
		}
	}
	return Value{}, false
}

// Len returns the number of attached pairs, shadowed ones included.
func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.pairs)
}

// Names returns the distinct argument names, newest first.
func (a *Args) Names() []string {
	if a == nil {
		return nil
	}
	seen := make(map[string]bool, len(a.pairs))
	names := make([]string, 0, len(a.pairs))
	for i := len(a.pairs) - 1; i >= 0; i-- {
		name := a.pairs[i].name
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Err returns the conversion errors collected while attaching values, joined.
func (a *Args) Err() error {
	if a == nil {
		return nil
	}
	return errors.Join(a.errs...)
}
