// SPDX-License-Identifier: MPL-2.0

// Package mission turns a job definition and the run's settings into what the
// rest of bacon needs for one change cycle: the ignore set for the watcher, the
// exact command for the process engine, and the policies (stdout need,
// analyzer, ignored lines, sound, success) for reporting.
//
// A Mission is cheap and immutable. The watch loop builds a fresh one on every
// cycle; nothing here watches files, starts processes, or parses output.
// Recoverable misconfigurations (unknown env variables, malformed ignore
// patterns, missing git repository, unavailable sound) are logged and degrade
// gracefully; only an empty command is reported as an error.
package mission
