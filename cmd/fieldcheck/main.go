package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Azhovan/fieldcheck/cmd/fieldcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrInvalid) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
