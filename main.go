package main

import "github.com/arifwid/opstrack/cmd"

func main() {
	cmd.Execute()
}
