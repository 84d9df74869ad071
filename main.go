package main

import "github.com/rocketscienceinc/tictactoe-hotseat/cmd"

// main - is the entry point of the application.
func main() {
	cmd.Execute()
}
