// SPDX-License-Identifier: MPL-2.0

// Package ignore decides which filesystem paths must not trigger a job.
//
// A Set holds any number of predicates and excludes a path as soon as one of
// them does. Two predicates are provided: GitPredicate follows the .gitignore
// rules of the enclosing repository and GlobPredicate follows explicit
// doublestar patterns registered against a root directory.
package ignore
