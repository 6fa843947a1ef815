package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "done [chapter]",
		Short: "Publish a finished chapter and move on to the next one",
		Long: `Clean the session transcript into output.txt, commit the chapter directory
and the studyflow records, push, and advance the current chapter by one.`,
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
			result, err := orch.Done(commandCtx(cmd), chapter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Done. Advanced from chapter %s to %s.\n", chapterLabel(result.From), chapterLabel(result.To))
			fmt.Fprintln(out, "Next: studyflow start")
			return nil
		},
	}
}
