package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"studyflow/internal/transcript"
)

func newTailCommand(ctx *commandContext) *cobra.Command {
	var follow bool
	var lines int

	cmd := &cobra.Command{
		Use:   "tail [chapter]",
		Short: "Show the cleaned session transcript of a chapter",
		Long: `Print the last lines of the chapter's session transcript with terminal
escape sequences removed. With --follow, keep printing new lines while the
logged shell is in use.`,
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
			if lines < 0 {
				lines = 0
			}

			runCtx := commandCtx(cmd)
			out := cmd.OutOrStdout()
			opts := transcript.TailOptions{Offset: -1, Limit: lines, Follow: follow, Wait: time.Second}
			printed := false
			for {
				_, result, err := orch.TranscriptTail(runCtx, chapter, opts)
				if err != nil {
					if follow && errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
				for _, line := range result.Lines {
					fmt.Fprintln(out, line)
					printed = true
				}
				if !follow {
					if !printed {
						fmt.Fprintln(out, "No transcript lines yet")
					}
					return nil
				}
				opts.Offset = result.Offset
				opts.Limit = 0
				select {
				case <-runCtx.Done():
					return nil
				default:
				}
			}
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new transcript lines")
	cmd.Flags().IntVarP(&lines, "lines", "n", 20, "Number of lines to show (0 for all)")
	return cmd
}
