// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package watch

import "syscall"

// inotify runs out of watches (max_user_watches) or descriptors.
var exhaustedErrnos = []syscall.Errno{syscall.ENOSPC, syscall.EMFILE, syscall.ENFILE}
