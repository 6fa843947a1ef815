package main

import (
	"github.com/spf13/cobra"
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start [chapter]",
		Short: "Open the reading and practice workspace for a chapter",
		Long: `Open a tmux session with the chapter text on the left and a logged shell
on the right. Without an argument the current chapter is used. If the
chapter's page range is unknown you are asked for it once.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chapter, err := parseChapterArg(args)
			if err != nil {
				return err
			}
			orch, _, err := ctx.orchestrator()
			if err != nil {
				return err
			}
			_, err = orch.Start(commandCtx(cmd), chapter)
			return err
		},
	}
}
