package main

import "github.com/chibuka/atc-cli/cmd"

func main() {
	cmd.Execute()
}
