package main

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/elisa-suite/logrouter/config"
	"github.com/elisa-suite/logrouter/core"
	"github.com/elisa-suite/logrouter/handler"
	"github.com/elisa-suite/logrouter/logger"
)

const (
	emitCmdUsage = "emit <config>"
	emitCmdShort = "apply a configuration and send test records through it"
	emitCmdLong  = `Apply a configuration and send test records through it.
	The records carry a fresh correlation id and a sequence number so
	the run is easy to find in the sinks afterwards. Console sinks
	write to this command's streams. The command fails when any sink
	reports a delivery failure.`

	emitCmdExample = `# Send three WARNING records through the observer channel
	logrouter emit logging.json --channel observer.observer --level WARNING --count 3`

	channelFlagName = "channel"
	levelFlagName   = "level"
	messageFlagName = "message"
	countFlagName   = "count"
)

// emitFlags holds the flag values for the emit command.
type emitFlags struct {
	channel string
	level   string
	message string
	count   int
}

// addFlags registers the emit flags on cmd.
func (f *emitFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.channel, channelFlagName, "", "channel to emit on (default: root)")
	flags.StringVar(&f.level, levelFlagName, "INFO", "severity of the emitted records")
	flags.StringVar(&f.message, messageFlagName, "routing check", "message of the emitted records")
	flags.IntVar(&f.count, countFlagName, 1, "how many records to emit")
}

// emitCmd returns the Cobra command that sends test records through a
// configuration.
func emitCmd() *cobra.Command {
	flags := &emitFlags{}

	cmd := &cobra.Command{
		Use:     emitCmdUsage,
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args: configArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := core.ParseLevel(flags.level)
			if err != nil {
				cmd.PrintErrln(err)
				return err
			}
			if flags.count < 1 {
				err := fmt.Errorf("count must be at least 1, got %d", flags.count)
				cmd.PrintErrln(err)
				return err
			}

			table, err := loadTable(cmd, args[0])
			if err != nil {
				return err
			}

			reg := logger.NewRegistry()
			reg.SetErrorOutput(cmd.ErrOrStderr())
			opts := config.ApplyOptions{
				Stdout: cmd.OutOrStdout(),
				Stderr: cmd.ErrOrStderr(),
			}
			if err := table.ApplyWith(reg, opts); err != nil {
				cmd.PrintErrln(err)
				return err
			}

			ch := reg.GetLogger(flags.channel)
			runID := uuid.NewString()
			for seq := 1; seq <= flags.count; seq++ {
				ch.Log(level, flags.message,
					logger.String("correlation_id", runID),
					logger.Int("seq", seq))
			}

			processed, failed := sinkTotals(ch)
			if err := reg.Close(); err != nil {
				cmd.PrintErrln(err)
				return err
			}

			cmd.Printf("emitted %d records on %s at %s: %d sink writes, %d failures\n",
				flags.count, ch.Name(), level, processed, failed)
			if failed > 0 {
				return fmt.Errorf("%d sink writes failed", failed)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// sinkTotals sums delivery counters over the sinks reachable from the
// channel, walking the propagation chain the way dispatch does.
func sinkTotals(ch *logger.Channel) (processed, failed uint64) {
	seen := make(map[handler.Handler]struct{})
	for cur := ch; cur != nil; cur = cur.Parent() {
		for _, h := range cur.Handlers() {
			if _, ok := seen[h]; ok {
				continue
			}
			seen[h] = struct{}{}
			if sp, ok := h.(handler.StatsProvider); ok {
				snap := sp.GetSnapshot()
				processed += snap.ProcessedTotal
				failed += snap.FailedTotal
			}
		}
		if !cur.Propagate() {
			break
		}
	}

	return processed, failed
}
