// SPDX-License-Identifier: MPL-2.0

// Package jobspec defines the declarative job model consumed by bacon: jobs,
// the process-wide settings they run under, and references to a job narrowed to
// a subset of its tests.
//
// Values in this package are plain data. They are produced by the configuration
// loader (internal/config) and are never mutated once loading is complete, so a
// single *Settings can be shared by every mission built during a run.
package jobspec
