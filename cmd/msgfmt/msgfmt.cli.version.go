package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/itsatony/go-msgfmt"
)

type versionConfig struct {
	format      string
	versionFile string
}

// versionInfo describes the binary and the catalog backends compiled into it
type versionInfo struct {
	Version        string   `json:"version"`
	Revision       string   `json:"revision"`
	Built          string   `json:"built"`
	GoVersion      string   `json:"go_version"`
	StorageDrivers []string `json:"storage_drivers"`
}

// releaseMetadata is the optional version file written by release tooling.
// Non-empty fields win over what the Go build info reports.
type releaseMetadata struct {
	Version  string `yaml:"version"`
	Revision string `yaml:"revision"`
	Built    string `yaml:"built"`
}

func runVersion(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseVersionFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	build, _ := debug.ReadBuildInfo()
	info := versionFromBuild(build)

	release, err := readReleaseMetadata(cfg.versionFile)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}
	info.apply(release)

	if cfg.format == OutputFormatJSON {
		out, _ := json.MarshalIndent(info, "", "  ")
		fmt.Fprintln(stdout, string(out))
		return ExitCodeSuccess
	}

	fmt.Fprintf(stdout, VersionTextTemplate+FmtNewline,
		info.Version, info.Revision, info.Built, info.GoVersion,
		strings.Join(info.StorageDrivers, ArgumentSeparator))
	return ExitCodeSuccess
}

func parseVersionFlags(args []string) (*versionConfig, error) {
	flags := flag.NewFlagSet(CmdNameVersion, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	cfg := &versionConfig{}
	flags.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	flags.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")
	flags.StringVar(&cfg.versionFile, FlagVersionFile, FlagDefaultVersionFile, "")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}
	return cfg, nil
}

// versionFromBuild fills versionInfo from the embedded module and VCS data.
// A nil build yields unknown values.
func versionFromBuild(build *debug.BuildInfo) versionInfo {
	info := versionInfo{
		Version:        VersionUnknown,
		Revision:       VersionUnknown,
		Built:          VersionUnknown,
		GoVersion:      runtime.Version(),
		StorageDrivers: msgfmt.ListStorageDrivers(),
	}
	if build == nil {
		return info
	}

	if v := build.Main.Version; v != "" && v != VersionDevel {
		info.Version = v
	}
	if build.GoVersion != "" {
		info.GoVersion = build.GoVersion
	}
	for _, setting := range build.Settings {
		switch setting.Key {
		case BuildSettingRevision:
			info.Revision = setting.Value
		case BuildSettingTime:
			info.Built = setting.Value
		}
	}
	return info
}

// readReleaseMetadata returns nil when path does not exist
func readReleaseMetadata(path string) (*releaseMetadata, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var release releaseMetadata
	if err := yaml.Unmarshal(data, &release); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &release, nil
}

func (v *versionInfo) apply(release *releaseMetadata) {
	if release == nil {
		return
	}
	if release.Version != "" {
		v.Version = release.Version
	}
	if release.Revision != "" {
		v.Revision = release.Revision
	}
	if release.Built != "" {
		v.Built = release.Built
	}
}
