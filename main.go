// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/modrewrite/modrewrite/cmd/modrewrite"

func main() {
	cmd.Execute()
}
