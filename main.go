package main

import (
	"os"

	"github.com/shandysiswandi/cryptogate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
