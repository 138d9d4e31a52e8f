package main

import "github.com/philipparndt/showcase/cmd"

func main() {
	cmd.Execute()
}
