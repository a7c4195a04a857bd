// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against an embedded schema.
//
// Decoding happens in three steps: the schema is compiled, the user data is
// compiled and unified with one of the schema's definitions, and the unified
// value is validated and decoded into a Go value. Errors carry the file name
// and the JSON-style path of the offending field:
//
//	bacon.cue: jobs.check.command[0]: conflicting values 1 and string
package cueutil
