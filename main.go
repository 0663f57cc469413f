package main

import "github.com/ldoolitt/yosys/cmd"

func main() {
	cmd.Execute()
}
