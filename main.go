// Package main is the entry point for the jofsarpur application.
package main

import (
	"github.com/jofsarpur/jofsarpur/cmd"
	"github.com/jofsarpur/jofsarpur/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(log.Setup(log.Options{Level: "info"}))

	cmd.Execute()
}
