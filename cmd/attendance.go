package cmd

import (
	"encoding/json"
	"fmt"

	attendancerender "github.com/bnema/attendance-cli/internal/adapters/render/attendance"
	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAttendanceCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Show and record attendance",
	}

	cmd.AddCommand(
		newAttendanceTodayCmd(app),
		newAttendanceReportCmd(app),
		newAttendanceRecentCmd(app),
		newAttendanceMarkCmd(app),
	)

	return cmd
}

func newAttendanceTodayCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's status for every enrolled student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.attendance.Today(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}

			rendered, err := attendancerender.RenderToday(entries, attendancerender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render attendance: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newAttendanceReportCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize attendance per student across all recorded days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summaries, err := app.attendance.Report(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summaries)
			}

			rendered, err := attendancerender.RenderReport(summaries)
			if err != nil {
				return fmt.Errorf("render report: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newAttendanceRecentCmd(app *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent attendance records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.attendance.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			rendered, err := attendancerender.RenderRecent(entries)
			if err != nil {
				return fmt.Errorf("render recent attendance: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", application.DefaultRecentLimit, "Number of records to show")

	return cmd
}

func newAttendanceMarkCmd(app *app) *cobra.Command {
	var name string
	var status string

	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Record today's status for a student by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			record, err := app.attendance.Mark(cmd.Context(), application.MarkAttendanceCommand{
				Name:   name,
				Status: domain.Status(status),
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "marked %s %s on %s\n", name, record.Status.Label(), record.Date)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Student name")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusPresent), "Status (present|partial|absent)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeRendered(cmd *cobra.Command, rendered string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
