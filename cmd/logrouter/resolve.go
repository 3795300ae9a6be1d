package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/elisa-suite/logrouter/config"
)

const (
	resolveCmdUsage = "resolve <config>"
	resolveCmdShort = "print the routing table a configuration builds"
	resolveCmdLong  = `Print the routing table a configuration builds.
	Sinks are listed with their resolved class, threshold, and target,
	channels with their threshold, bound sinks, and propagation flag.
	A NOTSET channel level means the channel inherits its threshold
	from the nearest configured ancestor. The table is built without
	opening anything.`

	resolveCmdExample = `# Show how records would be routed
	logrouter resolve logging.json`
)

// resolveCmd returns the Cobra command that prints a resolved routing table.
func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     resolveCmdUsage,
		Short:   heredoc.Doc(resolveCmdShort),
		Long:    heredoc.Doc(resolveCmdLong),
		Example: heredoc.Doc(resolveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args: configArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd, args[0])
			if err != nil {
				return err
			}

			printTable(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func printTable(w io.Writer, table *config.RoutingTable) {
	for _, name := range table.HandlerNames() {
		h := table.Handlers[name]
		switch h.Kind {
		case config.SinkConsole:
			fmt.Fprintf(w, "sink %s: console level=%s stream=%s\n",
				name, h.Level, h.Stream)
		case config.SinkRotatingFile:
			fmt.Fprintf(w, "sink %s: rotating_file level=%s file=%s maxBytes=%d backupCount=%d\n",
				name, h.Level, h.Filename, h.MaxBytes, h.BackupCount)
		}
	}

	fmt.Fprintf(w, "channel root: level=%s handlers=%s\n",
		table.Root.Level, handlerList(table.Root.Handlers))
	for _, name := range table.LoggerNames() {
		l := table.Loggers[name]
		fmt.Fprintf(w, "channel %s: level=%s handlers=%s propagate=%t\n",
			name, l.Level, handlerList(l.Handlers), l.Propagate)
	}
}

func handlerList(names []string) string {
	return "[" + strings.Join(names, " ") + "]"
}
