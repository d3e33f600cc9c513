// Command xmlnode reads, edits, formats and compares XML documents.
package main

import (
	"os"

	"github.com/chrisuehlinger/xmlnode/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
