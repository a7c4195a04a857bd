// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"errors"
	"fmt"
)

const (
	// MaxVolume is the loudest accepted base volume.
	MaxVolume Volume = 100
	// DefaultVolume is used when a job enables sound without picking a volume.
	DefaultVolume Volume = 100
)

// ErrInvalidVolume is the sentinel error wrapped by InvalidVolumeError.
var ErrInvalidVolume = errors.New("invalid volume")

type (
	// Volume is a sound volume percentage in [0, 100].
	Volume int

	// InvalidVolumeError is returned when a Volume is out of range.
	InvalidVolumeError struct {
		Value Volume
	}

	// SoundConfig decides whether a job plays sounds when it completes.
	SoundConfig struct {
		Enabled bool `json:"enabled,omitempty" toml:"enabled,omitempty"`
		// BaseVolume is nil when the job enables sound without setting a volume.
		BaseVolume *Volume `json:"base_volume,omitempty" toml:"base_volume,omitempty"`
	}
)

// Validate returns nil if v is within [0, MaxVolume].
func (v Volume) Validate() error {
	if v < 0 || v > MaxVolume {
		return &InvalidVolumeError{Value: v}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidVolumeError) Error() string {
	return fmt.Sprintf("invalid volume %d: must be between 0 and %d", e.Value, MaxVolume)
}

// Unwrap returns ErrInvalidVolume for errors.Is() compatibility.
func (e *InvalidVolumeError) Unwrap() error { return ErrInvalidVolume }

// IsEnabled reports whether the job asked for sound.
func (s SoundConfig) IsEnabled() bool { return s.Enabled }

// GetBaseVolume returns the configured volume or DefaultVolume.
func (s SoundConfig) GetBaseVolume() Volume {
	if s.BaseVolume == nil {
		return DefaultVolume
	}
	return *s.BaseVolume
}
