// Package main runs the AstralStream gesture daemon and its offline tools.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "astralgestured",
	Short:        "Touch gesture engine for AstralStream playback",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, replayCmd, validateCmd)
}

// main is the entrypoint for the gesture daemon.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
