package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-msgfmt"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	catalogDir   string
	key          string
	locale       string
	accept       string
	dataJSON     string
	dataFilePath string
	outputPath   string
	verbose      bool
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	msgArgs, err := loadArgs(cfg.dataJSON, cfg.dataFilePath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidJSON, err)
		return ExitCodeInputError
	}

	var result string
	if cfg.templatePath != "" {
		result, err = renderTemplate(cfg, stdin, msgArgs, stderr)
	} else {
		result, err = renderCatalogKey(cfg, msgArgs, stderr)
	}
	if err != nil {
		return exitCodeFor(err)
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}

	return ExitCodeSuccess
}

// cliError carries the exit code chosen where the failure was reported
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }

func exitCodeFor(err error) int {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return ExitCodeError
}

func renderTemplate(cfg *renderConfig, stdin io.Reader, args *msgfmt.Args, stderr io.Writer) (string, error) {
	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return "", &cliError{code: ExitCodeInputError, err: err}
	}

	msg, err := msgfmt.Parse(string(source), msgfmt.WithLogger(newLogger(cfg.verbose, stderr)))
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgParseTemplateFailed, err)
		return "", &cliError{code: ExitCodeValidationError, err: err}
	}

	result, err := msg.RenderToString(msgfmt.NewContext(cfg.locale), args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return "", &cliError{code: ExitCodeError, err: err}
	}
	return result, nil
}

func renderCatalogKey(cfg *renderConfig, args *msgfmt.Args, stderr io.Writer) (string, error) {
	ctx := context.Background()
	logger := newLogger(cfg.verbose, stderr)

	storage, err := msgfmt.NewFilesystemStorage(cfg.catalogDir, logger)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgOpenCatalogFailed, err)
		return "", &cliError{code: ExitCodeInputError, err: err}
	}
	defer storage.Close()

	bundle := msgfmt.NewBundle(storage, msgfmt.WithBundleLogger(logger))

	locale := cfg.locale
	if cfg.accept != "" {
		locale, err = bundle.MatchLocale(ctx, cfg.accept)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgOpenCatalogFailed, err)
			return "", &cliError{code: ExitCodeInputError, err: err}
		}
	}

	result, err := bundle.RenderToString(ctx, locale, cfg.key, args)
	if err != nil {
		code := ExitCodeError
		if msgfmt.IsParseError(err) {
			code = ExitCodeValidationError
		}
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return "", &cliError{code: code, err: err}
	}
	return result, nil
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.catalogDir, FlagCatalog, "", "")
	fs.StringVar(&cfg.catalogDir, FlagCatalogShort, "", "")
	fs.StringVar(&cfg.key, FlagKey, "", "")
	fs.StringVar(&cfg.key, FlagKeyShort, "", "")
	fs.StringVar(&cfg.locale, FlagLocale, FlagDefaultLocale, "")
	fs.StringVar(&cfg.locale, FlagLocaleShort, FlagDefaultLocale, "")
	fs.StringVar(&cfg.accept, FlagAccept, "", "")
	fs.StringVar(&cfg.accept, FlagAcceptShort, "", "")
	fs.StringVar(&cfg.dataJSON, FlagData, "", "")
	fs.StringVar(&cfg.dataJSON, FlagDataShort, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFile, "", "")
	fs.StringVar(&cfg.dataFilePath, FlagDataFileShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")
	fs.BoolVar(&cfg.verbose, FlagVerbose, false, "")
	fs.BoolVar(&cfg.verbose, FlagVerboseShort, false, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" && (cfg.catalogDir == "" || cfg.key == "") {
		return nil, errors.New(ErrMsgTemplateOrKey)
	}

	return cfg, nil
}
