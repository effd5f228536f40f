package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/prepdesk/internal/model"
	"github.com/verte-zerg/prepdesk/internal/stats"
)

var attemptListLast int

func newAttemptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attempt",
		Short: "Record and inspect mock-test attempts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "record [file|-]",
		Short: "Record attempts from a JSON object or array",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAttemptRecordCmd,
	})
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded attempts",
		Args:  cobra.NoArgs,
		RunE:  runAttemptListCmd,
	}
	listCmd.Flags().IntVar(&attemptListLast, "last", 0, "limit to last N attempts")
	cmd.AddCommand(listCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the whole attempt history",
		Args:  cobra.NoArgs,
		RunE:  runAttemptClearCmd,
	})
	return cmd
}

func runAttemptRecordCmd(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read attempts: %w", err)
	}
	list, err := parseAttempts(data)
	if err != nil {
		return err
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	now := time.Now()
	for i, a := range list {
		saved, err := e.attempts.Record(now, a)
		if err != nil {
			return fmt.Errorf("attempt %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %.1f%% (%d questions)\n", shortID(saved.ID), stats.AttemptScore(saved), saved.TotalQuestions); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// parseAttempts accepts either a single attempt object or an array of them.
func parseAttempts(data []byte) ([]model.Attempt, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("no attempt data")
	}
	if data[0] == '[' {
		var list []model.Attempt
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to decode attempts: %w", err)
		}
		return list, nil
	}
	var a model.Attempt
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode attempt: %w", err)
	}
	return []model.Attempt{a}, nil
}

func runAttemptListCmd(cmd *cobra.Command, _ []string) error {
	if attemptListLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	out := cmd.OutOrStdout()
	list := e.attempts.Load()
	if attemptListLast > 0 && len(list) > attemptListLast {
		list = list[len(list)-attemptListLast:]
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(out, "No attempts found.")
		return err
	}
	for _, a := range list {
		if _, err := fmt.Fprintf(out, "%s  %s  %5.1f%%  %3d questions  %s\n",
			shortID(a.ID),
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			stats.AttemptScore(a),
			a.TotalQuestions,
			time.Duration(a.TimeTaken)*time.Second,
		); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runAttemptClearCmd(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()
	if err := e.attempts.Clear(); err != nil {
		return fmt.Errorf("failed to clear attempts: %w", err)
	}
	logErrln("Attempt history cleared.")
	return nil
}
