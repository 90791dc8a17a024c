package main

import "github.com/grinta-launcher/grinta/cmd/commands"

// Version is set during build with -ldflags
var version = "dev"

func main() {
	commands.Execute(version)
}
