package main

import "mcdash/internal/cli/cmd"

func main() {
	cmd.Execute()
}
