package main

import (
	"os"

	"github.com/Rrens/skill-swap/cmd/skillswap/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
