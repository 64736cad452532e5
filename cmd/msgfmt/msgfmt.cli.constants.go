package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameCatalog  = "catalog"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagOutput   = "output"
	FlagFormat   = "format"
	FlagCatalog  = "catalog"
	FlagLocale   = "locale"
	FlagKey      = "key"
	FlagAccept   = "accept"
	FlagVerbose  = "verbose"

	FlagVersionFile = "version-file"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
	FlagCatalogShort  = "c"
	FlagLocaleShort   = "l"
	FlagKeyShort      = "k"
	FlagAcceptShort   = "a"
	FlagVerboseShort  = "v"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
	FlagDefaultLocale = "en"

	FlagDefaultVersionFile = "versions.yaml"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages
const (
	ErrMsgUnknownCommand      = "unknown command"
	ErrMsgMissingTemplate     = "template source required"
	ErrMsgTemplateOrKey       = "either --template or --catalog with --key is required"
	ErrMsgMissingCatalog      = "catalog directory required"
	ErrMsgInvalidJSON         = "invalid JSON data"
	ErrMsgReadFileFailed      = "failed to read file"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgParseTemplateFailed = "template parsing failed"
	ErrMsgRenderFailed        = "message rendering failed"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgOpenCatalogFailed   = "failed to open catalog"
	ErrMsgListCatalogFailed   = "failed to list catalog"
	ErrMsgInvalidFlags        = "invalid flags"
)

// Help text templates
const (
	HelpMainUsage = `msgfmt - ICU-style message formatting CLI

Usage:
    msgfmt <command> [options]

Commands:
    render      Render a message with arguments
    validate    Validate a message template
    catalog     List and check the messages of a catalog directory
    version     Show version information
    help        Show help for a command

Use "msgfmt help <command>" for more information about a command.`

	HelpRenderUsage = `Render a message with arguments

Usage:
    msgfmt render [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -c, --catalog <dir>     Catalog directory (YAML/TOML file per locale)
    -k, --key <key>         Message key in the catalog
    -l, --locale <tag>      Locale for catalog lookup (default: en)
    -a, --accept <header>   Accept-Language value used to pick the catalog locale
    -d, --data <json>       JSON object of arguments
    -f, --data-file <file>  JSON file of arguments
    -o, --output <file>     Output file (default: stdout)
    -v, --verbose           Log catalog lookups to stderr

Examples:
    msgfmt render -t message.txt -d '{"name": "Alice"}'
    echo '{n, plural, one {# file} other {# files}}' | msgfmt render -t - -d '{"n": 3}'
    msgfmt render -c ./locales -k inbox.count -l de-AT -d '{"n": 1}'`

	HelpValidateUsage = `Validate a message template

Usage:
    msgfmt validate [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    msgfmt validate -t message.txt
    cat message.txt | msgfmt validate -t - -F json`

	HelpCatalogUsage = `List and check the messages of a catalog directory

Usage:
    msgfmt catalog [options]

Options:
    -c, --catalog <dir>     Catalog directory (YAML/TOML file per locale)
    -l, --locale <tag>      Only list this locale
    -F, --format <format>   Output format: text, json (default: text)

Exit status is 3 when any message fails to parse.`

	HelpVersionUsage = `Show version information

Usage:
    msgfmt version [options]

Options:
    -F, --format <format>     Output format: text, json (default: text)
    --version-file <path>     Release metadata overriding the build info
                              (default: versions.yaml, ignored when missing)`

	HelpHelpUsage = `Show help for a command

Usage:
    msgfmt help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    catalog     Show help for catalog command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "msgfmt %s (%s, built %s, %s)\nStorage drivers: %s"
	VersionUnknown      = "unknown"
	VersionDevel        = "(devel)"

	BuildSettingRevision = "vcs.revision"
	BuildSettingTime     = "vcs.time"
)

// Validation output format templates
const (
	ValidationTextSuccess   = "Template is valid"
	ValidationTextArguments = "Arguments: %s"
	ValidationTextNoArgs    = "Arguments: none"
	ValidationTextError     = "Invalid template at line %d, column %d: %v"
)

// Catalog output format templates
const (
	CatalogTextEntryOK      = "  ok       %s"
	CatalogTextEntryInvalid = "  invalid  %s: %s"
	CatalogTextLocale       = "%s:"
	CatalogTextSummary      = "%d message(s), %d invalid"
)

// CLI metadata
const (
	CLIName        = "msgfmt"
	CLIDescription = "ICU-style message formatting CLI"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
	ArgumentSeparator  = ", "
)
