// SPDX-License-Identifier: MPL-2.0

// Package config loads bacon's settings.
//
// Settings are layered, lowest priority first: the built-in job set, the
// user preferences file (prefs.cue or prefs.toml in the bacon config
// directory), the package's bacon.cue or bacon.toml, BACON_* environment
// variables, and finally command-line overrides. A job defined in a later
// file replaces the job of the same name entirely.
//
// CUE files are validated against the embedded schema.cue. TOML files are
// decoded strictly: unknown keys are errors.
package config
