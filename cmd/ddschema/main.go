package main

import "github.com/takumiyoshikawa/ddschema/cmd/ddschema/commands"

func main() {
	commands.Execute()
}
