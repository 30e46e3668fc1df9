package main

import (
	"fmt"
	"os"
)

// Exit codes per §7: 0 on success, 1 on a configuration or I/O error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}
