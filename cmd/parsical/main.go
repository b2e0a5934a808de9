// Command parsical converts, formats and parses Persian calendar dates, and
// imports calendar events into the API's database.
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/zapponejosh/parsical/cmd/parsical/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
