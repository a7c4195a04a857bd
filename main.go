// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/kpbaks/bacon/cmd/bacon"

func main() {
	cmd.Execute()
}
