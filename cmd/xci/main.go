// xci renders source files into compact, line-numbered skeletons and
// expands the entities a set of retrieved chunks lands on.
package main

import (
	"os"

	"github.com/corey/xci/cmd/xci/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
