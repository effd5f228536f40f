package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/prepdesk/internal/attempts"
	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/progress"
	"github.com/verte-zerg/prepdesk/internal/tui"
)

var (
	syncQuestions int
	syncMinutes   int
)

func newGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage daily goals",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List goals with today's progress",
		Args:  cobra.NoArgs,
		RunE:  runGoalListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "add <time|questions> <target>",
		Short: "Add a daily goal",
		Args:  cobra.ExactArgs(2),
		RunE:  runGoalAddCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit <id> <target>",
		Short: "Change a goal's target",
		Args:  cobra.ExactArgs(2),
		RunE:  runGoalEditCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a goal",
		Args:    cobra.ExactArgs(1),
		RunE:    runGoalRmCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset today's progress",
		Args:  cobra.NoArgs,
		RunE:  runGoalResetCmd,
	})
	return cmd
}

func runGoalListCmd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	list := e.goals.LoadGoals()
	p := e.goals.LoadOrInitProgress(time.Now())
	return printGoals(cmd.OutOrStdout(), list, p)
}

func printGoals(w io.Writer, list []model.Goal, p model.DailyProgress) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No goals yet. Add one with: prepdesk goal add questions 50")
		return err
	}
	if _, err := fmt.Fprintf(w, "Goals for %s\n", p.Date); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, g := range list {
		entry := p.Goals[g.ID]
		mark := " "
		if entry.Completed {
			mark = "x"
		}
		if _, err := fmt.Fprintf(w, "[%s] %s  %-9s %d/%d  %s\n", mark, shortID(g.ID), g.Type, entry.Current, g.Target, g.LabelTranslated); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runGoalAddCmd(cmd *cobra.Command, args []string) error {
	t, target, err := tui.ParseGoalInput(args[0] + " " + args[1])
	if err != nil {
		return err
	}
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	now := time.Now()
	live := attempts.TodayCounters(e.attempts.Load(), now)
	g, err := e.goals.AddGoal(now, t, target, live)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s\n", shortID(g.ID), g.Label)
	return err
}

func runGoalEditCmd(cmd *cobra.Command, args []string) error {
	target, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("target must be a whole number: %w", err)
	}
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	g, err := e.goals.FindGoal(args[0])
	if err != nil {
		return err
	}
	g, err = e.goals.UpdateGoal(time.Now(), g.ID, target)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s\n", shortID(g.ID), g.Label)
	return err
}

func runGoalRmCmd(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	g, err := e.goals.FindGoal(args[0])
	if err != nil {
		return err
	}
	if err := e.goals.DeleteGoal(time.Now(), g.ID); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s: %s\n", shortID(g.ID), g.Label)
	return err
}

func runGoalResetCmd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	now := time.Now()
	p, err := e.goals.ResetDailyProgress(now, attempts.TodayCounters(e.attempts.Load(), now))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Reset progress for %s\n", p.Date)
	return err
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Update today's goal progress",
		Long:  "Update today's goal progress from today's attempts, or from explicit counters.",
		Args:  cobra.NoArgs,
		RunE:  runSyncCmd,
	}
	cmd.Flags().IntVar(&syncQuestions, "questions", 0, "questions answered today (default: from recorded attempts)")
	cmd.Flags().IntVar(&syncMinutes, "minutes", 0, "minutes studied today (default: from recorded attempts)")
	return cmd
}

func runSyncCmd(cmd *cobra.Command, _ []string) error {
	if syncQuestions < 0 || syncMinutes < 0 {
		return fmt.Errorf("--questions and --minutes must be >= 0")
	}
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	now := time.Now()
	live := attempts.TodayCounters(e.attempts.Load(), now)
	if cmd.Flags().Changed("questions") {
		live.Questions = syncQuestions
	}
	if cmd.Flags().Changed("minutes") {
		live.Minutes = syncMinutes
	}

	out := cmd.OutOrStdout()
	tracker := progress.NewTracker(e.goals, progress.NotifierFunc(func(g model.Goal, entry model.GoalProgress) {
		if _, err := fmt.Fprintf(out, "Goal complete: %s (%d/%d)\n", g.Label, entry.Current, g.Target); err != nil {
			logErrf("failed to write output: %v\n", err)
		}
	}))
	res, err := tracker.Sync(now, live)
	if err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return printGoals(out, res.Goals, res.Progress)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
