package main

import (
	"os"

	"github.com/agencia-dev/agencia/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
