package main

import (
	"encoding/json"
	"fmt"
	"io"

	"wellness/internal/app"
	"wellness/internal/engine"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type report struct {
	Goal     *app.GoalStatus      `json:"goal"`
	Calories engine.WeeklySummary `json:"calories"`
	Balance  engine.WeeklyBalance `json:"balance"`
}

func reportCmd() *cobra.Command {
	var (
		userID  int64
		asJSON  bool
		weekArg string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print goal progress, weekly calorie summary and weekly balance for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, st, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()
			defer func() { _ = st.close() }()

			svc := newServices(st, cfg, nil)

			var r report
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() (err error) {
				r.Goal, err = svc.goals.Status(ctx, userID)
				return err
			})
			g.Go(func() (err error) {
				r.Calories, err = svc.calories.WeeklySummary(ctx, userID)
				return err
			})
			g.Go(func() (err error) {
				r.Balance, err = svc.calendar.WeeklyBalance(ctx, userID, weekArg)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			renderReport(cmd.OutOrStdout(), r)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 1, "user to report on")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.Flags().StringVar(&weekArg, "week", "", "week start for the balance (YYYY-MM-DD, default current week)")
	return cmd
}

func renderReport(w io.Writer, r report) {
	goal := table.NewWriter()
	goal.SetOutputMirror(w)
	goal.SetTitle("Goal progress")
	switch {
	case r.Goal == nil || r.Goal.Goal == nil:
		goal.AppendRow(table.Row{"No active goal"})
	case r.Goal.Progress == nil:
		goal.AppendRow(table.Row{"Goal", r.Goal.Goal.GoalType})
		goal.AppendRow(table.Row{"Progress", "needs a target weight and a weigh-in"})
	default:
		p := r.Goal.Progress
		goal.AppendHeader(table.Row{"Goal", "Start", "Current", "Target", "Complete", "Days", "On track"})
		remaining := "-"
		if p.DaysRemaining != nil {
			remaining = fmt.Sprintf("%d left", *p.DaysRemaining)
		}
		goal.AppendRow(table.Row{
			r.Goal.Goal.GoalType,
			fmt.Sprintf("%.1f %s", p.StartWeight, p.Unit),
			fmt.Sprintf("%.1f %s", p.CurrentWeight, p.Unit),
			fmt.Sprintf("%.1f %s", p.TargetWeight, p.Unit),
			fmt.Sprintf("%.0f%%", p.PercentComplete),
			fmt.Sprintf("%d in, %s", p.DaysElapsed, remaining),
			yesNo(p.OnTrack),
		})
	}
	goal.Render()

	cal := table.NewWriter()
	cal.SetOutputMirror(w)
	cal.SetTitle("Calories, last 7 records")
	cal.AppendHeader(table.Row{"Days", "Target", "Consumed", "Deviation", "On track"})
	cal.AppendRow(table.Row{r.Calories.Days, r.Calories.TotalTarget, r.Calories.TotalConsumed, r.Calories.WeeklyDeviation, yesNo(r.Calories.OnTrack)})
	cal.Render()

	bal := table.NewWriter()
	bal.SetOutputMirror(w)
	bal.SetTitle("Week of " + r.Balance.WeekStart)
	bal.AppendHeader(table.Row{"Date", "Impact", "Events"})
	for _, d := range r.Balance.Days {
		bal.AppendRow(table.Row{d.Date, d.Impact, d.Events})
	}
	bal.AppendFooter(table.Row{"Score", r.Balance.Score, r.Balance.Recommendation})
	bal.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
