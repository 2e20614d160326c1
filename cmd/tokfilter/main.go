package main

import "tokfilter/internal/cli"

func main() {
	cli.Execute()
}
