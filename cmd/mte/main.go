package main

import "github.com/ivlev/mte/internal/cli"

func main() {
	cli.Main()
}
