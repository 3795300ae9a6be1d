package main

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

const (
	validateCmdUsage = "validate <config>"
	validateCmdShort = "check a logging configuration without applying it"
	validateCmdLong  = `Check a logging configuration without applying it.
	The document is decoded strictly and every defect is reported at
	once, each prefixed with its location in the document. Nothing is
	opened: a valid file means the configuration can be applied, not
	that every sink path is writable.`

	validateCmdExample = `# Validate a JSON configuration
	logrouter validate logging.json

	# Validate a YAML configuration
	logrouter validate logging.yaml`
)

// validateCmd returns the Cobra command that checks a configuration file.
func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     validateCmdUsage,
		Short:   heredoc.Doc(validateCmdShort),
		Long:    heredoc.Doc(validateCmdLong),
		Example: heredoc.Doc(validateCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args: configArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadTable(cmd, args[0]); err != nil {
				return err
			}

			cmd.Printf("%s: configuration valid\n", args[0])
			return nil
		},
	}
}
