// Command dochist is the DocHist command-line interface.
package main

import (
	"os"

	"github.com/kilupskalvis/dochist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
