// SPDX-License-Identifier: MPL-2.0

package main

import cmd "solvenv-cli/cmd/solvenv"

func main() {
	cmd.Execute()
}
