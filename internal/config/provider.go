// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces the preferences file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the user config directory lookup when set.
		ConfigDirPath string
		// SkipPrefs ignores the user preferences file.
		SkipPrefs bool
		// PackageDir is searched for bacon.cue or bacon.toml when set.
		PackageDir string
		// Overrides carries command-line values, applied last.
		Overrides Overrides
		Logger    *log.Logger
	}

	// Overrides are command-line settings. Nil fields leave lower layers alone.
	Overrides struct {
		Features          *string
		NoDefaultFeatures *bool
		AllFeatures       *bool
		AdditionalJobArgs []string
		DefaultJob        *string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	fileProvider struct{}
)

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested sources.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	return loadWithOptions(ctx, opts)
}

func (o Overrides) apply(v *viper.Viper) {
	if o.Features != nil {
		v.Set(keyFeatures, *o.Features)
	}
	if o.NoDefaultFeatures != nil {
		v.Set(keyNoDefaultFeatures, *o.NoDefaultFeatures)
	}
	if o.AllFeatures != nil {
		v.Set(keyAllFeatures, *o.AllFeatures)
	}
	if o.AdditionalJobArgs != nil {
		v.Set(keyAdditionalJobArgs, o.AdditionalJobArgs)
	}
	if o.DefaultJob != nil {
		v.Set(keyDefaultJob, *o.DefaultJob)
	}
}
