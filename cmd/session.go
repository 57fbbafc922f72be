package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	attendancerender "github.com/bnema/attendance-cli/internal/adapters/render/attendance"
	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 10

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run recognition sessions",
	}

	cmd.AddCommand(
		newSessionRunCmd(app),
		newSessionHistoryCmd(app),
	)

	return cmd
}

type sessionRunOptions struct {
	classID  string
	subject  string
	duration time.Duration
	policy   string
}

func newSessionRunCmd(app *app) *cobra.Command {
	var opts sessionRunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a recognition session until interrupted or the duration expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSession(cmd, app, opts)
		},
	}

	cmd.Flags().StringVar(&opts.classID, "class", "", "Class identifier")
	cmd.Flags().StringVar(&opts.subject, "subject", "", "Subject")
	cmd.Flags().DurationVar(&opts.duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	cmd.Flags().StringVar(&opts.policy, "policy", "", "Commit policy override (batch|per_detection)")

	return cmd
}

func runSession(cmd *cobra.Command, app *app, opts sessionRunOptions) error {
	engine, err := app.sessionEngine(opts.policy)
	if err != nil {
		return err
	}

	interruptCtx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	session, err := engine.Start(cmd.Context(), application.StartSessionCommand{
		ClassID: opts.classID,
		Subject: opts.subject,
	})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "session %s started for %s / %s\n", session.ID, session.ClassID, session.Subject)

	result, err := runSessionSpinner(cmd.Context(), cmd.ErrOrStderr(), engine, func(ctx context.Context) (application.StopResult, error) {
		return awaitSession(ctx, interruptCtx, engine, opts.duration)
	})

	var partial *domain.PartialCommitError
	if errors.As(err, &partial) {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "commit incomplete for %d student(s), retrying\n", len(partial.FailedIDs()))
		if retryErr := engine.Committer().Retry(cmd.Context(), result.Records, partial.FailedIDs()); retryErr != nil {
			return fmt.Errorf("retry attendance commit: %w", retryErr)
		}
		err = withoutPartialCommit(err)
	}
	if err != nil && result.Session.ID == "" {
		_, _ = engine.Stop(context.WithoutCancel(cmd.Context()))
		return err
	}

	if writeErr := writeSessionOutcome(cmd, app, result); writeErr != nil {
		return errors.Join(err, writeErr)
	}

	return err
}

// withoutPartialCommit drops the partial commit failure from err and keeps every
// other joined error, such as an archive or capture release failure.
func withoutPartialCommit(err error) error {
	var partial *domain.PartialCommitError
	if err == nil || !errors.As(err, &partial) {
		return err
	}
	if _, ok := err.(*domain.PartialCommitError); ok {
		return nil
	}

	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return nil
	}

	var kept []error
	for _, inner := range joined.Unwrap() {
		if rest := withoutPartialCommit(inner); rest != nil {
			kept = append(kept, rest)
		}
	}

	return errors.Join(kept...)
}

// awaitSession blocks until the session ends on its own, the duration expires
// or the process is interrupted. The last two stop the engine.
func awaitSession(ctx, interruptCtx context.Context, engine *application.SessionEngine, duration time.Duration) (application.StopResult, error) {
	type outcome struct {
		result application.StopResult
		err    error
	}

	ended := make(chan outcome, 1)
	go func() {
		result, err := engine.Wait(context.WithoutCancel(ctx))
		ended <- outcome{result: result, err: err}
	}()

	var expired <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case out := <-ended:
		return out.result, out.err
	case <-expired:
	case <-interruptCtx.Done():
	case <-ctx.Done():
	}

	result, err := engine.Stop(context.WithoutCancel(ctx))
	if errors.Is(err, domain.ErrSessionNotActive) {
		out := <-ended
		return out.result, out.err
	}

	return result, err
}

func writeSessionOutcome(cmd *cobra.Command, app *app, result application.StopResult) error {
	reason := "stopped"
	if result.Reason == application.StopReasonDeviceLost {
		reason = "capture device lost"
	}

	present, absent := domain.CountStatuses(result.Records)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s ended: %s\n", result.Session.ID, reason)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recognized: %d  present: %d  absent: %d\n", len(result.Recognitions), present, absent)

	students, err := app.roster.List(cmd.Context())
	if err != nil {
		return err
	}

	entries := make([]application.DayEntry, 0, len(students))
	for _, student := range students {
		record, ok := result.Records[student.ID]
		if !ok {
			continue
		}
		entries = append(entries, application.DayEntry{
			Student:    student,
			Status:     record.Status,
			Recorded:   true,
			RecordedAt: record.RecordedAt,
		})
	}

	rendered, err := attendancerender.RenderToday(entries, attendancerender.RenderOptions{Now: result.Session.StartedAt})
	if err != nil {
		return fmt.Errorf("render session attendance: %w", err)
	}

	return writeRendered(cmd, rendered)
}

func newSessionHistoryCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.attendance.Sessions(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, sessions)
			}

			rendered, err := attendancerender.RenderSessions(sessions, attendancerender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render sessions: %w", err)
			}
			return writeRendered(cmd, rendered)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", defaultHistoryLimit, "Number of sessions to show")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
