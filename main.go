// Package main is the entry point for the bgmsync application.
package main

import (
	"github.com/anisan-cli/bgmsync/cmd"
	"github.com/anisan-cli/bgmsync/config"
	"github.com/anisan-cli/bgmsync/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
