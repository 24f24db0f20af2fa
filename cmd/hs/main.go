package main

import "github.com/xifanyan/helpspot/internal/cli"

func main() {
	cli.Execute()
}
