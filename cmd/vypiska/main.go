package main

import (
	"os"

	"github.com/vypiska-dev/vypiska/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
