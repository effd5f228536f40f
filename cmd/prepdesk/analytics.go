package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/prepdesk/internal/drill"
	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/stats"
	"github.com/verte-zerg/prepdesk/internal/statsui"
)

var (
	analyticsSince     string
	analyticsLast      int
	analyticsMinSample int
	analyticsWindow    int

	drillQuestions int
	drillFactor    float64
	drillSeed      int64
)

func addAnalyticsFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&analyticsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&analyticsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&analyticsMinSample, "min-sample", stats.DefaultMinSample, "questions a subject needs before it is classified")
	cmd.Flags().IntVar(&analyticsWindow, "window", defaultCurveWindow, "moving average window")
}

func newAnalyticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Print subject analytics and a study plan",
		Args:  cobra.NoArgs,
		RunE:  runAnalyticsCmd,
	}
	addAnalyticsFlags(cmd)
	return cmd
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse analytics interactively",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	addAnalyticsFlags(cmd)
	return cmd
}

func analyticsConfig(cmd *cobra.Command, e *env) (model.AnalyticsConfig, error) {
	applyIntConfig(cmd, "last", &analyticsLast, e.cfg.Analytics.Last)
	applyIntConfig(cmd, "min-sample", &analyticsMinSample, e.cfg.Analytics.MinSample)
	applyIntConfig(cmd, "window", &analyticsWindow, e.cfg.Analytics.CurveWindow)

	if analyticsLast < 0 {
		return model.AnalyticsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if analyticsMinSample < 1 {
		return model.AnalyticsConfig{}, fmt.Errorf("--min-sample must be >= 1")
	}
	if analyticsWindow < 1 {
		return model.AnalyticsConfig{}, fmt.Errorf("--window must be >= 1")
	}
	cfg := model.AnalyticsConfig{
		Last:        analyticsLast,
		MinSample:   analyticsMinSample,
		CurveWindow: analyticsWindow,
	}
	if analyticsSince != "" {
		parsed, err := time.ParseInLocation(model.DateLayout, analyticsSince, time.Local)
		if err != nil {
			return model.AnalyticsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func runAnalyticsCmd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	cfg, err := analyticsConfig(cmd, e)
	if err != nil {
		return err
	}
	report := stats.BuildReport(e.attempts.Load(), cfg, e.strategies())
	warnUnmatched(report.Unmatched)
	return renderReport(cmd.OutOrStdout(), report, cfg.CurveWindow, 0, false)
}

func renderReport(w io.Writer, report stats.Report, window, width int, useColor bool) error {
	if err := stats.RenderSummary(w, report.Attempts); err != nil {
		return err
	}
	if len(report.Attempts) == 0 {
		return nil
	}
	if err := stats.RenderSubjectTable(w, report.Subjects); err != nil {
		return err
	}
	if err := stats.RenderDifficultyTable(w, report.Difficulties); err != nil {
		return err
	}
	if err := stats.RenderClassification(w, report.Classification, report.MinSample); err != nil {
		return err
	}
	if err := stats.RenderPlan(w, report.Plan); err != nil {
		return err
	}
	return stats.RenderTrend(w, report.Attempts, window, width, 0, useColor)
}

func warnUnmatched(subjects []string) {
	if len(subjects) == 0 {
		return
	}
	logErrf("no study strategy for %s; using default times (add [strategy.\"<name>\"] to the config)\n", strings.Join(subjects, ", "))
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	cfg, err := analyticsConfig(cmd, e)
	if err != nil {
		return err
	}
	m := statsui.NewModel(e.attempts, cfg, e.strategies())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newDrillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Suggest a practice mix biased toward weak subjects",
		Args:  cobra.NoArgs,
		RunE:  runDrillCmd,
	}
	cmd.Flags().IntVar(&drillQuestions, "questions", defaultDrillQuestions, "questions in the mix")
	cmd.Flags().Float64Var(&drillFactor, "factor", defaultDrillFactor, "weight factor for weak subjects")
	cmd.Flags().Int64Var(&drillSeed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().IntVar(&analyticsLast, "last", 0, "use only the last N attempts")
	return cmd
}

func runDrillCmd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	applyIntConfig(cmd, "questions", &drillQuestions, e.cfg.Drill.Questions)
	applyFloatConfig(cmd, "factor", &drillFactor, e.cfg.Drill.Factor)
	applyIntConfig(cmd, "last", &analyticsLast, e.cfg.Analytics.Last)
	if drillQuestions <= 0 {
		return fmt.Errorf("--questions must be > 0")
	}
	if drillFactor < 0 {
		return fmt.Errorf("--factor must be >= 0")
	}
	if analyticsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	composer := drill.New()
	if drillSeed != 0 {
		composer = drill.NewSeeded(drillSeed)
	}
	list := e.attempts.Load()
	if analyticsLast > 0 && len(list) > analyticsLast {
		list = list[len(list)-analyticsLast:]
	}
	aggs := stats.AggregateBySubject(list)
	if len(aggs) == 0 {
		logErrln("no attempts recorded yet; record one with: prepdesk attempt record <file>")
		return fmt.Errorf("no subject stats available")
	}
	return printDrill(cmd.OutOrStdout(), composer.Compose(aggs, drillQuestions, drillFactor))
}

func printDrill(w io.Writer, mix []drill.Allocation) error {
	total := 0
	for _, a := range mix {
		total += a.Questions
	}
	if _, err := fmt.Fprintf(w, "Practice mix (%d questions)\n", total); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, a := range mix {
		if _, err := fmt.Fprintf(w, "%4d  %s (accuracy %d%%)\n", a.Questions, a.Subject, a.Accuracy); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
