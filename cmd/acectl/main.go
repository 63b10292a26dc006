package main

import "github.com/UlviDemirsoy/JavaReflection/internal/cli"

func main() {
	cli.Execute()
}
