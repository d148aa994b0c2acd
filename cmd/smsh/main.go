package main

import (
	"os"

	"github.com/smsh-cli/smsh/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
