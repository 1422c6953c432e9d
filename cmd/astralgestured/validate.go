package main

import (
	"fmt"

	"github.com/frudas24/astralgesture/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var validatePrint bool

var validateCmd = &cobra.Command{
	Use:   "validate <settings.yaml>",
	Short: "Check a gesture settings file",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validatePrint, "print", false, "Print the effective settings with defaults filled in")
}

// runValidate loads, checks, and optionally prints a settings file.
func runValidate(cmd *cobra.Command, args []string) error {
	file, err := config.LoadFile(args[0])
	if err != nil {
		return err
	}
	if err := file.Validate(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: ok\n", args[0])
	if !validatePrint {
		return nil
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
