package main

import (
	"os"

	"postboard/app/cli"
)

var exit = os.Exit

func main() {
	exit(cli.Run(os.Args[1:], os.Stdout, os.Stdin))
}
