package main

import (
	"os"

	"github.com/seojun-park/wonmoa/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
