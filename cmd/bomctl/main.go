package main

import "github.com/osse101/RecipeBOM_Go/cmd/bomctl/commands"

func main() {
	commands.Execute()
}
