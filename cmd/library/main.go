package main

import (
	"os"

	"github.com/Apurer/go-gin-design-library/cmd/library/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
