package msgfmt

import (
	"math"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs_Get(t *testing.T) {
	args := Arg("name", "Hendrik").Arg("city", "Berlin").Arg("count", 3)

	v, ok := args.Get("city")
	require.True(t, ok)
	assert.Equal(t, StringValue("Berlin"), v)

	v, ok = args.Get("count")
	require.True(t, ok)
	assert.Equal(t, NumberValue(3), v)

	_, ok = args.Get("missing")
	assert.False(t, ok)
}

func TestArgs_ShadowingNewestWins(t *testing.T) {
	args := Arg("x", 1).Arg("x", 2)

	v, ok := args.Get("x")
	require.True(t, ok)
	assert.Equal(t, NumberValue(2), v)
	assert.Equal(t, 2, args.Len())
	assert.Equal(t, []string{"x"}, args.Names())
}

func TestArgs_ShadowingChangesVariant(t *testing.T) {
	args := Arg("x", "first").Arg("y", 1).Arg("x", 9)
	v, ok := args.Get("x")
	require.True(t, ok)
	assert.Equal(t, KindNumber, v.Kind())
	assert.Equal(t, []string{"x", "y"}, args.Names())
}

func TestArgs_NilIsEmpty(t *testing.T) {
	var args *Args

	_, ok := args.Get("x")
	assert.False(t, ok)
	assert.Equal(t, 0, args.Len())
	assert.Nil(t, args.Names())
	assert.NoError(t, args.Err())

	grown := args.Arg("x", 1)
	require.NotNil(t, grown)
	v, ok := grown.Get("x")
	require.True(t, ok)
	assert.Equal(t, NumberValue(1), v)
}

func TestArgs_ConversionErrorsAreDeferred(t *testing.T) {
	args := Arg("ok", 1).Arg("bad", 2.5).Arg("worse", uint64(math.MaxUint64))

	_, ok := args.Get("bad")
	assert.False(t, ok)
	assert.Equal(t, 1, args.Len())

	err := args.Err()
	require.Error(t, err)
	assert.True(t, IsArgumentConversion(err))
	assert.Contains(t, err.Error(), ErrMsgArgumentConversion)
}

func TestArgsFromMap(t *testing.T) {
	args := ArgsFromMap(map[string]any{
		"b": "bee",
		"a": 1,
	})

	assert.Equal(t, 2, args.Len())
	assert.Equal(t, []string{"b", "a"}, args.Names())

	v, ok := args.Get("a")
	require.True(t, ok)
	assert.Equal(t, NumberValue(1), v)
	assert.NoError(t, args.Err())
}

func TestArgs_ArgLeavesReceiverUntouched(t *testing.T) {
	base := Arg("user", "Ann")
	one := base.Arg("count", 1)
	five := base.Arg("count", 5)

	assert.NotSame(t, one, five)
	assert.Equal(t, 1, base.Len())
	_, ok := base.Get("count")
	assert.False(t, ok)

	v, ok := one.Get("count")
	require.True(t, ok)
	assert.Equal(t, NumberValue(1), v)

	v, ok = five.Get("count")
	require.True(t, ok)
	assert.Equal(t, NumberValue(5), v)

	for _, args := range []*Args{one, five} {
		v, ok = args.Get("user")
		require.True(t, ok)
		assert.Equal(t, StringValue("Ann"), v)
	}
}

func TestArgs_ConversionErrorsDoNotLeakAcrossBranches(t *testing.T) {
	base := Arg("user", "Ann")
	bad := base.Arg("count", 2.5)
	good := base.Arg("count", 2)

	assert.Error(t, bad.Err())
	assert.NoError(t, good.Err())
	assert.NoError(t, base.Err())
}

func TestArgs_ConcurrentDerivationFromSharedBase(t *testing.T) {
	base := Arg("user", "Ann").Arg("kind", "file")
	msg := MustParse("{user}: {count, plural, one {# file} other {# files}}")

	const workers = 50
	results := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = msg.RenderToString(DefaultContext(), base.Arg("count", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		want := "Ann: " + strconv.Itoa(i) + " files"
		if i == 1 {
			want = "Ann: 1 file"
		}
		assert.Equal(t, want, results[i])
	}
	assert.Equal(t, 2, base.Len())
}

func TestArgsFromMap_Empty(t *testing.T) {
	args := ArgsFromMap(nil)
	require.NotNil(t, args)
	assert.Equal(t, 0, args.Len())
}
