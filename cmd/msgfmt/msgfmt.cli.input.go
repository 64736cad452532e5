package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/itsatony/go-msgfmt"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, FilePermissions)
}

// loadArgs decodes a JSON object into message arguments.
// Numbers are kept as json.Number so integers convert without float rounding.
func loadArgs(jsonStr, filePath string) (*msgfmt.Args, error) {
	var jsonData []byte

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		jsonData = data
	} else if jsonStr != "" {
		jsonData = []byte(jsonStr)
	} else {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()

	var values map[string]any
	if err := decoder.Decode(&values); err != nil {
		return nil, err
	}

	return msgfmt.ArgsFromMap(values), nil
}

// newLogger returns a development console logger on stderr when verbose, else a no-op logger
func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(stderr),
		zapcore.DebugLevel,
	)
	return zap.New(core)
}
