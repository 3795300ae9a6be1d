package main

import (
	"github.com/spf13/cobra"

	"github.com/elisa-suite/logrouter/config"
)

// loadTable loads a configuration file and prints every defect it
// finds to the command's error stream, one per line.
func loadTable(cmd *cobra.Command, path string) (*config.RoutingTable, error) {
	table, err := config.LoadFile(path)
	if err != nil {
		for _, defect := range config.Defects(err) {
			cmd.PrintErrln(defect)
		}
		return nil, err
	}

	return table, nil
}

// noArgs rejects positional arguments, printing the usage text along
// with the error.
func noArgs(cmd *cobra.Command, args []string) error {
	err := cobra.NoArgs(cmd, args)
	if err != nil {
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
	}

	return err
}

// configArg requires exactly the configuration file argument.
func configArg(cmd *cobra.Command, args []string) error {
	err := cobra.ExactArgs(1)(cmd, args)
	if err != nil {
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
	}

	return err
}
