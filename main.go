package main

import "github.com/screenpilot-dev/screenpilot/pkg/cli"

func main() {
	cli.Execute()
}
