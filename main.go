package main

import "github.com/Gthulhu/schedsim/cmd"

func main() {
	cmd.Execute()
}
