// Command scene lays out and renders scene documents headlessly.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/scene/cmd/scene/cmd"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
