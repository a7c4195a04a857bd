// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// Win32 codes after which ReadDirectoryChangesW stops delivering events:
// too many open files (4), invalid handle (6) when a watched directory is
// removed, not enough memory (8) for the notification buffer.
var exhaustedErrnos = []syscall.Errno{4, 6, 8}
