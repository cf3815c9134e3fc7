package main

import (
	"os"

	"github.com/s-pearce/ooicgsn-data-tools/internal/exitcode"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitcode.UsageError)
	}
}
