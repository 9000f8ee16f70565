package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/caixa-dev/caixa/internal/alertlog"
	"github.com/caixa-dev/caixa/internal/alerts"
	"github.com/caixa-dev/caixa/internal/model"
)

var severityColors = map[model.Severity]*color.Color{
	model.SeverityInfo:     color.New(color.FgCyan),
	model.SeverityWarning:  color.New(color.FgYellow),
	model.SeverityCritical: color.New(color.FgRed, color.Bold),
}

// severityLabel colors the severity when stdout is a terminal.
func severityLabel(s model.Severity) string {
	if c, ok := severityColors[s]; ok {
		return c.Sprint(string(s))
	}
	return string(s)
}

func newAlertsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Cash-flow alerts",
	}
	cmd.AddCommand(newAlertsGenerateCommand(), newAlertsListCommand(), newAlertsReadCommand())
	return cmd
}

func newAlertsGenerateCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Check recent transactions and store new alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}

			now := p.now()
			today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc)
			from := today.AddDate(0, 0, -p.cfg.Lookback())
			// The monthly check needs all of last month.
			if prev := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, p.loc); prev.Before(from) {
				from = prev
			}
			txns, err := p.ledger.Range(from, today.AddDate(0, 0, 1))
			if err != nil {
				return err
			}

			engine := alerts.NewEngine(
				alerts.WithClock(func() time.Time { return now }),
				alerts.WithLocation(p.loc),
				alerts.WithThresholds(p.cfg.Thresholds()),
			)
			raised := engine.Generate(txns)

			store := alertlog.NewStore(p.root, p.cfg.DedupWindow())
			saved, err := store.Save(p.cfg.Business.ID, raised, now)
			if err != nil {
				return err
			}
			p.log.Debug().Int("transactions", len(txns)).Int("raised", len(raised)).
				Int("duplicates", len(raised)-len(saved)).Msg("alerts generated")

			out := cmd.OutOrStdout()
			if len(saved) == 0 {
				fmt.Fprintln(out, "No new alerts.")
				return nil
			}
			for _, r := range saved {
				fmt.Fprintf(out, "[%s] %s\n", severityLabel(r.Severity), r.Message)
			}
			return p.commit(fmt.Sprintf("alerts: %d new", len(saved)))
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}

func newAlertsListCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show unread alerts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			unread, err := alertlog.NewStore(p.root, p.cfg.DedupWindow()).Unread()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(unread) == 0 {
				fmt.Fprintln(out, "No unread alerts.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tSEVERITY\tMESSAGE")
			for _, r := range unread {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.In(p.loc).Format("02/01/2006 15:04"), severityLabel(r.Severity), r.Message)
			}
			return tw.Flush()
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}

func newAlertsReadCommand() *cobra.Command {
	var repoDir string

	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, repoDir)
			if err != nil {
				return err
			}
			if err := alertlog.NewStore(p.root, p.cfg.DedupWindow()).MarkRead(args[0]); err != nil {
				return err
			}
			if err := p.commit("alerts: read " + args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as read\n", args[0])
			return nil
		},
	}
	addRepoFlag(cmd, &repoDir)
	return cmd
}
