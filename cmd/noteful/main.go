package main

import "github.com/aussiebroadwan/noteful/cmd/noteful/cmd"

func main() {
	cmd.Execute()
}
