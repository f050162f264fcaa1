package main

import (
	"github.com/turtacn/acadmin/cmd/cli"
)

func main() {
	cli.Execute()
}
