// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/kpbaks/bacon/pkg/cueutil"
	"github.com/kpbaks/bacon/pkg/jobspec"

	"github.com/BurntSushi/toml"
)

const (
	// FormatCUE is the extension of CUE settings files.
	FormatCUE = "cue"
	// FormatTOML is the extension of TOML settings files.
	FormatTOML = "toml"
)

//go:embed schema.cue
var configSchema []byte

// File is the content of one settings file. Unset scalars are nil so that
// they do not override lower layers.
type File struct {
	Features           *string                `json:"features,omitempty" toml:"features,omitempty"`
	NoDefaultFeatures  *bool                  `json:"no_default_features,omitempty" toml:"no_default_features,omitempty"`
	AllFeatures        *bool                  `json:"all_features,omitempty" toml:"all_features,omitempty"`
	AdditionalJobArgs  []string               `json:"additional_job_args,omitempty" toml:"additional_job_args,omitempty"`
	SingleTestCommands [][]string             `json:"single_test_commands,omitempty" toml:"single_test_commands,omitempty"`
	DefaultJob         *string                `json:"default_job,omitempty" toml:"default_job,omitempty"`
	AllJobs            *jobspec.JobDefaults   `json:"all_jobs,omitempty" toml:"all_jobs,omitempty"`
	Jobs               map[string]jobspec.Job `json:"jobs,omitempty" toml:"jobs,omitempty"`
}

// ReadFile decodes the settings file at path. The format follows the extension.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	switch ext := strings.TrimPrefix(filepath.Ext(path), "."); ext {
	case FormatCUE:
		return DecodeCUE(data, path)
	case FormatTOML:
		return DecodeTOML(data, path)
	default:
		return nil, fmt.Errorf("%s: unsupported settings format %q (want .cue or .toml)", path, ext)
	}
}

// DecodeCUE validates data against the #Config schema and decodes it.
func DecodeCUE(data []byte, filename string) (*File, error) {
	return cueutil.Decode[File](configSchema, data, "#Config", cueutil.WithFilename(filename))
}

// DecodeTOML decodes data, rejecting keys File does not know.
func DecodeTOML(data []byte, filename string) (*File, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, err
	}
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return nil, fmt.Errorf("%s: unknown keys: %s", filename, strings.Join(keys, ", "))
	}
	return &f, nil
}

// findFile returns dir/base.cue or dir/base.toml, CUE first, or "" when neither exists.
func findFile(dir, base string) string {
	for _, ext := range []string{FormatCUE, FormatTOML} {
		p := filepath.Join(dir, base+"."+ext)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
