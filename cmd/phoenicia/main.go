package main

import (
	"os"

	"phoenicia/internal/cli"
)

// runGame opens the window; it stays nil unless built with the ebiten tag.
var runGame cli.Runner

func main() {
	if err := cli.Execute(runGame); err != nil {
		os.Exit(1)
	}
}
