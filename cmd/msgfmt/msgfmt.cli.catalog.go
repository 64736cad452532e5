package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-msgfmt"
)

// catalogConfig holds parsed catalog command configuration
type catalogConfig struct {
	catalogDir string
	locale     string
	format     string
}

// catalogEntryOutput represents one message in JSON output
type catalogEntryOutput struct {
	Locale    string   `json:"locale"`
	Key       string   `json:"key"`
	Valid     bool     `json:"valid"`
	Arguments []string `json:"arguments,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// catalogOutput represents JSON output for the catalog command
type catalogOutput struct {
	Locales  []string             `json:"locales"`
	Messages []catalogEntryOutput `json:"messages"`
	Invalid  int                  `json:"invalid"`
}

func runCatalog(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseCatalogFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	storage, err := msgfmt.OpenStorage(msgfmt.StorageDriverNameFilesystem, cfg.catalogDir)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgOpenCatalogFailed, err)
		return ExitCodeInputError
	}
	defer storage.Close()

	ctx := context.Background()
	locales, err := storage.Locales(ctx)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgListCatalogFailed, err)
		return ExitCodeError
	}
	stored, err := storage.List(ctx, &msgfmt.CatalogQuery{Locale: cfg.locale})
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgListCatalogFailed, err)
		return ExitCodeError
	}

	output := checkCatalog(locales, stored)

	if cfg.format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(stdout, string(jsonBytes))
	} else {
		outputCatalogText(output, stdout)
	}

	if output.Invalid > 0 {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}

// checkCatalog parses every stored message with the classifier of its locale
func checkCatalog(locales []string, stored []*msgfmt.StoredMessage) *catalogOutput {
	registry := msgfmt.DefaultClassifierRegistry()
	output := &catalogOutput{
		Locales:  locales,
		Messages: make([]catalogEntryOutput, 0, len(stored)),
	}

	for _, sm := range stored {
		entry := catalogEntryOutput{Locale: sm.Locale, Key: sm.Key, Valid: true}
		msg, err := msgfmt.Parse(sm.Source, msgfmt.WithClassifier(registry.Lookup(sm.Locale)))
		if err != nil {
			entry.Valid = false
			entry.Error = err.Error()
			output.Invalid++
		} else {
			entry.Arguments = msg.ArgumentNames()
		}
		output.Messages = append(output.Messages, entry)
	}
	return output
}

func outputCatalogText(output *catalogOutput, stdout io.Writer) {
	current := ""
	for _, entry := range output.Messages {
		if entry.Locale != current {
			current = entry.Locale
			fmt.Fprintf(stdout, CatalogTextLocale+FmtNewline, current)
		}
		if entry.Valid {
			fmt.Fprintf(stdout, CatalogTextEntryOK+FmtNewline, entry.Key)
		} else {
			fmt.Fprintf(stdout, CatalogTextEntryInvalid+FmtNewline, entry.Key, entry.Error)
		}
	}
	fmt.Fprintf(stdout, CatalogTextSummary+FmtNewline, len(output.Messages), output.Invalid)
}

func parseCatalogFlags(args []string) (*catalogConfig, error) {
	fs := flag.NewFlagSet(CmdNameCatalog, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &catalogConfig{}

	fs.StringVar(&cfg.catalogDir, FlagCatalog, "", "")
	fs.StringVar(&cfg.catalogDir, FlagCatalogShort, "", "")
	fs.StringVar(&cfg.locale, FlagLocale, "", "")
	fs.StringVar(&cfg.locale, FlagLocaleShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.catalogDir == "" {
		return nil, errors.New(ErrMsgMissingCatalog)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}
