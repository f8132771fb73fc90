package main

import (
	"os"

	"github.com/xano-labs/xano-mcp-server/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
