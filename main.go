// Package main is the entry point for the movix application.
package main

import (
	"github.com/samber/lo"

	"github.com/sapphirebluet/Movix/cmd"
	"github.com/sapphirebluet/Movix/config"
	"github.com/sapphirebluet/Movix/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
