package main

import (
	"os"

	"mova.dev/relay/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
