package main

import "github.com/alexiusacademia/gowbeam/cmd"

func main() {
	cmd.Execute()
}
