package main

import (
	"os"

	"github.com/caixa-dev/caixa/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
