package main

import (
	"os"

	"github.com/ashagraev/roast-my-cv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
