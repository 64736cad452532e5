package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/itsatony/go-msgfmt"
)

// validateConfig holds parsed validate command configuration
type validateConfig struct {
	templatePath string
	format       string
}

// validationOutput represents JSON output for validation
type validationOutput struct {
	Valid     bool                   `json:"valid"`
	Arguments []string               `json:"arguments,omitempty"`
	Error     *validationErrorOutput `json:"error,omitempty"`
}

type validationErrorOutput struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Offset  int    `json:"offset"`
}

func runValidate(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseValidateFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	source, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	msg, parseErr := msgfmt.Parse(string(source))

	if cfg.format == OutputFormatJSON {
		return outputValidationJSON(msg, parseErr, stdout)
	}
	return outputValidationText(msg, parseErr, stdout)
}

func parseValidateFlags(args []string) (*validateConfig, error) {
	fs := flag.NewFlagSet(CmdNameValidate, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &validateConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}

func outputValidationText(msg *msgfmt.Message, parseErr error, stdout io.Writer) int {
	if parseErr != nil {
		pos, _ := msgfmt.ErrorPosition(parseErr)
		fmt.Fprintf(stdout, ValidationTextError+FmtNewline, pos.Line, pos.Column, parseErr)
		return ExitCodeValidationError
	}

	fmt.Fprintln(stdout, ValidationTextSuccess)
	names := msg.ArgumentNames()
	if len(names) == 0 {
		fmt.Fprintln(stdout, ValidationTextNoArgs)
	} else {
		fmt.Fprintf(stdout, ValidationTextArguments+FmtNewline, strings.Join(names, ArgumentSeparator))
	}
	return ExitCodeSuccess
}

func outputValidationJSON(msg *msgfmt.Message, parseErr error, stdout io.Writer) int {
	output := validationOutput{Valid: parseErr == nil}

	if parseErr != nil {
		pos, _ := msgfmt.ErrorPosition(parseErr)
		output.Error = &validationErrorOutput{
			Kind:    msgfmt.ErrorKind(parseErr),
			Message: parseErr.Error(),
			Line:    pos.Line,
			Column:  pos.Column,
			Offset:  pos.Offset,
		}
	} else {
		output.Arguments = msg.ArgumentNames()
	}

	jsonBytes, _ := json.MarshalIndent(output, "", "  ")
	fmt.Fprintln(stdout, string(jsonBytes))

	if !output.Valid {
		return ExitCodeValidationError
	}
	return ExitCodeSuccess
}
