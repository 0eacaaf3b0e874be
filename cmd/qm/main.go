package main

import (
	"github.com/questlab/questmaster/internal/cli"
)

func main() {
	cli.Execute()
}
