package main

import (
	"os"

	"github.com/haguru/bookstore/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
