package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/stash/internal/command"
	"github.com/nikbrunner/stash/internal/culler"
)

var checkPrune bool

var checkCmd = &cobra.Command{
	Use:   "check [topic]",
	Short: "Check link urls for dead or unreachable pages",
	Long: `Check requests every link url, or those of one topic, and reports the
ones that are dead (404/410) or unreachable. Domains listed under
check.exclude_domains report 404s as possibly private instead of dead.

With --prune, dead links are removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := ctrl.Store()
		var topicName string
		if len(args) == 1 {
			topicName = args[0]
			if err := requireTopic(s, topicName); err != nil {
				return err
			}
		}

		targets := culler.Targets(s, topicName)
		if len(targets) == 0 {
			fmt.Println("No links to check")
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		results := culler.CheckURLs(ctx, targets, culler.Options{
			Concurrency:    cfg.Check.Concurrency,
			Timeout:        cfg.Check.Timeout,
			ExcludeDomains: cfg.Check.ExcludeDomains,
			OnProgress: func(completed, total int) {
				fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
			},
		})
		fmt.Fprintln(os.Stderr)

		printCheckResults(results)

		if !checkPrune {
			return nil
		}
		var cmds []command.Command
		for _, r := range results {
			if r.Status == culler.Dead {
				cmds = append(cmds, command.RemoveLink{TopicName: r.Target.TopicName, Link: r.Target.Link})
			}
		}
		if len(cmds) == 0 {
			return nil
		}
		removed, err := apply(cmds...)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d dead links\n", removed)
		return nil
	},
}

func printCheckResults(results []culler.Result) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	faint := color.New(color.Faint)

	counts := map[culler.Status]int{}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	tbl.AddRow(bold.Sprint("Status"), bold.Sprint("Topic"), bold.Sprint("Title"), bold.Sprint("Detail"))
	for _, r := range results {
		counts[r.Status]++
		switch r.Status {
		case culler.Dead:
			tbl.AddRow(red.Sprint(r.Status), r.Target.TopicName, r.Target.Link.Title, faint.Sprint(r.StatusCode))
		case culler.Unreachable:
			tbl.AddRow(yellow.Sprint(r.Status), r.Target.TopicName, r.Target.Link.Title, faint.Sprint(r.Error))
		}
	}

	if counts[culler.Dead]+counts[culler.Unreachable] > 0 {
		_, _ = fmt.Fprintln(color.Output, tbl)
		fmt.Println()
	}
	_, _ = fmt.Fprintf(color.Output, "%d healthy, %s, %s\n",
		counts[culler.Healthy],
		red.Sprintf("%d dead", counts[culler.Dead]),
		yellow.Sprintf("%d unreachable", counts[culler.Unreachable]),
	)
}

func init() {
	checkCmd.Flags().BoolVar(&checkPrune, "prune", false, "remove dead links")
}
