package main

import (
	"os"

	"github.com/pcfiz73/fechamento/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
