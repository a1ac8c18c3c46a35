package main

import "github.com/rpggio/intentcat/internal/cmd"

func main() {
	cmd.Execute()
}
