package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-dss/pkg/logger"
)

type cliApp struct {
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &cliApp{logger: zap.NewNop()}
	var level string

	root := &cobra.Command{
		Use:          "planner-cli",
		Short:        "Generate and rank weekly class timetable options",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.NewConsole(level)
			if err != nil {
				return err
			}
			app.logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&level, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(generateCmd(app))
	root.AddCommand(defaultsCmd())
	root.AddCommand(tokenCmd())
	return root
}
