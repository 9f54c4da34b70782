package main

import "github.com/notargets/phenolcst/cmd"

func main() {
	cmd.Execute()
}
