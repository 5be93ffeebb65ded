package main

import "declscope/internal/cli"

func main() {
	cli.Execute()
}
