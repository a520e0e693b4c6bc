package main

import "github.com/funvibe/kindgen/pkg/cli"

func main() {
	cli.Run()
}
