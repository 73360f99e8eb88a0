package main

import (
	"github.com/spf13/cobra"
)

var version = "v0.1.0"

var rootCmd = cobra.Command{
	Use:           "stackd",
	Short:         "stackd hosts named LIFO stacks over HTTP",
	Long:          "stackd hosts named, growable LIFO stacks and exposes push, pop, top, clone and move over a JSON HTTP API",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newServeCommand())
}
