package main

import "github.com/arl/navgen/cmd/navgen/cmd"

func main() {
	cmd.Execute()
}
