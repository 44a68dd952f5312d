package main

import (
	"os"

	"github.com/routeguard/routeguard/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
