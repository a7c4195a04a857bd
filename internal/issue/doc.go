// SPDX-License-Identifier: MPL-2.0

// Package issue turns failures into messages a user can act on.
//
// ActionableError carries the failed operation, the resource involved, and
// suggestions. Issue is a catalog of longer Markdown explanations for the
// failures users hit most often, rendered for the terminal with glamour.
package issue
