package main

import "github.com/vsinha/cfptrace/pkg/interfaces/cli/commands"

func main() {
	commands.Execute()
}
