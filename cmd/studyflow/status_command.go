package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"studyflow/internal/workflow"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current chapter, saved page ranges, and chapter artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, _, err := ctx.orchestrator()
			if err != nil {
				return err
			}
			report, err := orch.Status(commandCtx(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			statusReport(report, shouldColorize(out)).writeTo(out)
			return nil
		},
	}
}

func statusReport(status workflow.StatusReport, colorize bool) *report {
	rep := &report{colorize: colorize}
	rep.section("Study progress")
	rep.line("Current chapter", statusInfo, chapterLabel(status.CurrentChapter))
	switch {
	case status.LastSession == "":
		rep.line("Last session", statusInfo, "none")
	case status.SessionRunning:
		rep.line("Last session", statusOK, status.LastSession+" (running)")
	default:
		rep.line("Last session", statusWarn, status.LastSession+" (not running)")
	}
	rep.add("", renderTable(chapterTable(status)))
	return rep
}

func chapterTable(report workflow.StatusReport) tableSpec {
	spec := tableSpec{
		headers: []string{"Chapter", "Title", "Pages", "Text", "Transcript", "Output"},
		aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignCenter, alignCenter, alignCenter},
		caption: "* current chapter",
	}
	for _, ch := range report.Chapters {
		label := chapterLabel(ch.Chapter)
		if ch.Current {
			label = "* " + label
		}
		title, pages := "(not mapped)", "-"
		if ch.Mapped {
			title = ch.Mapping.Title
			pages = strconv.Itoa(ch.Mapping.StartPage) + "-" + strconv.Itoa(ch.Mapping.EndPage)
		}
		spec.rows = append(spec.rows, []string{
			label,
			title,
			pages,
			yesNo(ch.Artifacts.Text),
			yesNo(ch.Artifacts.Transcript),
			yesNo(ch.Artifacts.Output),
		})
	}
	return spec
}
