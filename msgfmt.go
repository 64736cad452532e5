// Package msgfmt provides ICU-style message formatting with plural and select support.
//
// Templates are parsed once into an immutable Message and rendered against
// named arguments and a render Context:
//
//	msg := msgfmt.MustParse("{name} has {count, plural, =0 {no files} one {# file} other {# files}}.")
//	out, err := msg.RenderToString(msgfmt.DefaultContext(), msgfmt.Arg("name", "Ada").Arg("count", 3))
//	// out: "Ada has 3 files."
//
// # Template Syntax
//
// Simple substitution writes an argument's display form:
//
//	Hello, {name}!
//
// Plural selects a branch by the plural category of a number. Literal "=N"
// branches win over category branches; "other" is mandatory. An optional
// offset is subtracted first, and '#' inside a branch prints the adjusted value:
//
//	{guests, plural, offset:1 =0 {nobody} =1 {{host} alone} one {{host} and one other} other {{host} and # others}}
//
// Select picks a branch by exact string match, falling back to "other":
//
//	{gender, select, female {her} male {his} other {their}}
//
// Branch bodies are messages themselves and nest freely.
// There is no escaping: a template with no '{' renders unchanged.
//
// # Errors
//
// Rendering is fail-fast. Missing arguments, arguments of the wrong type and
// '#' outside a plural branch are errors, never silent output; see
// IsMissingArgument, IsTypeMismatch and IsMissingContextValue.
//
// # Catalogs
//
// A Bundle serves messages by locale and key from a CatalogStorage backend
// (memory, filesystem with YAML or TOML files, or PostgreSQL), caches parsed
// messages and falls back across locales:
//
//	storage, _ := msgfmt.OpenStorage("filesystem", "./locales")
//	bundle := msgfmt.NewBundle(storage, msgfmt.WithFallbackLocale("en"))
//	out, err := bundle.RenderToString(ctx, "de-AT", "inbox.count", msgfmt.Arg("count", 2))
//
// # Thread Safety
//
// Messages, Contexts and the Bundle are safe for concurrent use. An Args list
// is built by one goroutine and may then be shared read-only.
package msgfmt
