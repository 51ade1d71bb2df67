package main

import (
	"os"

	"github.com/rootsource-ai/rootsource/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
