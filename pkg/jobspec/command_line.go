// SPDX-License-Identifier: MPL-2.0

package jobspec

import (
	"fmt"

	"mvdan.cc/sh/v3/shell"
)

// SplitCommandLine splits a shell-style command line into tokens, honouring
// quotes and escapes. Parameter references are kept as literal $NAME so that
// env expansion happens later, at command assembly time, like for Command.
func SplitCommandLine(line string) ([]string, error) {
	fields, err := shell.Fields(line, func(name string) string { return "$" + name })
	if err != nil {
		return nil, fmt.Errorf("split command line %q: %w", line, err)
	}
	return fields, nil
}
