package main

import (
	"os"

	"github.com/ekddigital/ekdsend-go/cmd/ekdsend/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
