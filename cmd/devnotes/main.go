package main

import (
	"fmt"
	"os"

	"devnotes/internal/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
