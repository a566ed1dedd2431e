package main

import (
	"os"

	"git.home.luguber.info/inful/refgen/cmd/refgen/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
