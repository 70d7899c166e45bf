package main

import "github.com/karolswdev/jiramcp/cmd"

func main() {
	cmd.Execute()
}
