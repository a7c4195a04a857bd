// SPDX-License-Identifier: MPL-2.0

package mission

// Resolve applies the override chain shared by job policies: the job's
// explicit value wins, then the global default, then def.
func Resolve[T any](job, global *T, def T) T {
	if job != nil {
		return *job
	}
	if global != nil {
		return *global
	}
	return def
}

// sliceRef returns nil for a nil slice so that "unset" and "set to empty"
// stay distinguishable in Resolve.
func sliceRef[T any](s []T) *[]T {
	if s == nil {
		return nil
	}
	return &s
}
