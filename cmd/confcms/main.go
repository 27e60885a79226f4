package main

import (
	"os"

	"github.com/jamesprial/confcms-mcp/cmd/confcms/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
