package main

import "github.com/nedbat/covcode/cmd"

func main() {
	cmd.Execute()
}
