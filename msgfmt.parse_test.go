package msgfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RenderEndToEnd(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     *Args
		expected string
	}{
		{
			name:     "two arguments",
			template: "{name} is from {city}.",
			args:     Arg("name", "Hendrik").Arg("city", "Berlin"),
			expected: "Hendrik is from Berlin.",
		},
		{
			name:     "no braces renders unchanged",
			template: "Nothing to see, really # here.",
			expected: "Nothing to see, really # here.",
		},
		{
			name:     "lone argument",
			template: "{name}",
			args:     Arg("name", "s"),
			expected: "s",
		},
		{
			name:     "argument name is trimmed",
			template: "{  name }",
			args:     Arg("name", "x"),
			expected: "x",
		},
		{
			name:     "plural one",
			template: "You have {count, plural, one {# message} other {# messages}}.",
			args:     Arg("count", 1),
			expected: "You have 1 message.",
		},
		{
			name:     "plural other",
			template: "You have {count, plural, one {# message} other {# messages}}.",
			args:     Arg("count", 5),
			expected: "You have 5 messages.",
		},
		{
			name:     "plural literal and offset",
			template: "{guests, plural, offset:1 =0 {nobody} =1 {{host} alone} one {{host} and one guest} other {{host} and # guests}}",
			args:     Arg("guests", 4).Arg("host", "Ana"),
			expected: "Ana and 3 guests",
		},
		{
			name:     "plural offset reaches one",
			template: "{guests, plural, offset:1 =0 {nobody} one {{host} and one guest} other {{host} and # guests}}",
			args:     Arg("guests", 2).Arg("host", "Ana"),
			expected: "Ana and one guest",
		},
		{
			name:     "select",
			template: "{gender, select, female {She} male {He} other {They}} liked it.",
			args:     Arg("gender", "male"),
			expected: "He liked it.",
		},
		{
			name:     "select inside plural",
			template: "{n, plural, one {{g, select, x {# x} other {# y}}} other {many}}",
			args:     Arg("n", 1).Arg("g", "z"),
			expected: "1 y",
		},
		{
			name:     "top-level closing brace is text",
			template: "a } b",
			expected: "a } b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse(tt.template)
			require.NoError(t, err)

			out, err := msg.RenderToString(DefaultContext(), tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestParse_PluralWithoutBodyBuiltManually(t *testing.T) {
	_, err := Parse("I have {count, plural}.")
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	msg := NewMessage(
		NewPlainText("I have "),
		NewPluralFormat("count", NewMessage(NewPlaceholderFormat(), NewPlainText(" dogs")),
			WithCategory(PluralOne, NewMessage(NewPlainText("a dog"))),
		),
		NewPlainText("."),
	)

	out, err := msg.RenderToString(DefaultContext(), Arg("count", 1))
	require.NoError(t, err)
	assert.Equal(t, "I have a dog.", out)

	out, err = msg.RenderToString(DefaultContext(), Arg("count", 5))
	require.NoError(t, err)
	assert.Equal(t, "I have 5 dogs.", out)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		template   string
		incomplete bool
	}{
		{name: "unterminated argument", template: "Hello {name", incomplete: true},
		{name: "unterminated plural", template: "{n, plural, one {x} other {y}", incomplete: true},
		{name: "unterminated branch", template: "{n, plural, other {y", incomplete: true},
		{name: "empty argument", template: "{}"},
		{name: "unknown keyword", template: "{n, number}"},
		{name: "missing other", template: "{n, plural, one {x}}"},
		{name: "unknown category", template: "{n, plural, lots {x} other {y}}"},
		{name: "duplicate selector", template: "{g, select, a {x} a {y} other {z}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Parse(tt.template)
			require.Error(t, err)
			assert.Nil(t, msg)
			assert.True(t, IsParseError(err))
			assert.Equal(t, tt.incomplete, IsIncomplete(err))
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse("line one\n  {n, bogus}")
	require.Error(t, err)

	assert.Equal(t, ErrKindSyntax, ErrorKind(err))
	assert.Equal(t, "2", errorMetadata(t, err, MetaKeyLine))
	assert.NotEmpty(t, errorMetadata(t, err, MetaKeyColumn))
}

func TestParse_MaxDepth(t *testing.T) {
	template := "{a, select, other {{b, select, other {{c, select, other {deep}}}}}}"

	_, err := Parse(template, WithMaxDepth(2))
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	msg, err := Parse(template, WithMaxDepth(3))
	require.NoError(t, err)
	out, err := msg.RenderToString(DefaultContext(), Arg("a", "").Arg("b", "").Arg("c", ""))
	require.NoError(t, err)
	assert.Equal(t, "deep", out)
}

func TestParse_RoundTrip(t *testing.T) {
	templates := []string{
		"plain",
		"{name} is from {city}.",
		"{count, plural, offset:1 =0 {none} one {one} other {# items}}",
		"{g, select, female {she} male {he} other {they}}",
		"{n, plural, one {{g, select, a {#} other {x}}} other {#}}",
	}

	for _, template := range templates {
		t.Run(template, func(t *testing.T) {
			msg, err := Parse(template)
			require.NoError(t, err)
			assert.Equal(t, template, msg.String())

			again, err := Parse(msg.String())
			require.NoError(t, err)
			assert.Equal(t, msg.String(), again.String())
		})
	}
}

func TestParse_WithClassifier(t *testing.T) {
	everythingFew := ClassifierFunc(func(int64) PluralCategory { return PluralFew })
	msg, err := Parse("{n, plural, few {few #} other {other #}}", WithClassifier(everythingFew))
	require.NoError(t, err)

	out, err := msg.RenderToString(DefaultContext(), Arg("n", 7))
	require.NoError(t, err)
	assert.Equal(t, "few 7", out)

	msg, err = Parse("{n, plural, few {few #} other {other #}}")
	require.NoError(t, err)
	out, err = msg.RenderToString(DefaultContext(), Arg("n", 7))
	require.NoError(t, err)
	assert.Equal(t, "other 7", out)
}

func TestParse_ArgumentNames(t *testing.T) {
	msg := MustParse("{host} invites {guests, plural, one {{friend}} other {# people}}")
	assert.Equal(t, []string{"friend", "guests", "host"}, msg.ArgumentNames())
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("{ok}") })
	assert.PanicsWithValue(t, ErrMsgMustParse+": "+mustParseErr(t, "{broken").Error(), func() {
		MustParse("{broken")
	})
}

func mustParseErr(t *testing.T, template string) error {
	t.Helper()
	_, err := Parse(template)
	require.Error(t, err)
	return err
}

func TestFormat(t *testing.T) {
	out, err := Format("Hi {name}", Arg("name", "Bo"))
	require.NoError(t, err)
	assert.Equal(t, "Hi Bo", out)

	_, err = Format("Hi {name", nil)
	assert.True(t, IsIncomplete(err))

	_, err = Format("Hi {name}", nil)
	assert.True(t, IsMissingArgument(err))
}
