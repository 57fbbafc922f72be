package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const DefaultCommitConcurrency = 4

type CommitBatch struct {
	Date         string
	RecordedAt   time.Time
	Recognitions []domain.Recognition
	Roster       []domain.Student
}

// BatchCommitter turns a session's recognitions into exactly one attendance record
// per roster member and writes them one student at a time.
type BatchCommitter struct {
	store          ports.AttendanceStore
	threshold      float64
	maxConcurrency int
	tracer         trace.Tracer
}

func NewBatchCommitter(store ports.AttendanceStore, threshold float64, maxConcurrency int) *BatchCommitter {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultCommitConcurrency
	}

	return &BatchCommitter{
		store:          store,
		threshold:      threshold,
		maxConcurrency: maxConcurrency,
		tracer:         tracer(),
	}
}

// Commit reconciles the batch against its roster and writes every record. On
// write failures the full intended record map is still returned together with a
// *domain.PartialCommitError; written records are not rolled back.
func (c *BatchCommitter) Commit(ctx context.Context, batch CommitBatch) (map[domain.StudentID]domain.Record, error) {
	if err := domain.ValidateDate(batch.Date); err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "attendance.commit", trace.WithAttributes(
		attribute.String("attendance.date", batch.Date),
		attribute.Int("attendance.roster_size", len(batch.Roster)),
		attribute.Int("attendance.recognitions", len(batch.Recognitions)),
	))
	defer span.End()

	records := domain.Reconcile(batch.Roster, batch.Recognitions, batch.Date, c.threshold, batch.RecordedAt)
	if err := c.write(ctx, batch.Date, records, sortedIDs(records)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "partial commit")
		return records, err
	}

	return records, nil
}

// Retry rewrites only the named students from a previously intended record map.
func (c *BatchCommitter) Retry(ctx context.Context, records map[domain.StudentID]domain.Record, failed []domain.StudentID) error {
	if len(failed) == 0 {
		return nil
	}

	date := ""
	for _, id := range failed {
		record, ok := records[id]
		if !ok {
			return fmt.Errorf("retry commit: no intended record for student %s", id)
		}
		date = record.Date
	}

	return c.write(ctx, date, records, failed)
}

func (c *BatchCommitter) write(ctx context.Context, date string, records map[domain.StudentID]domain.Record, ids []domain.StudentID) error {
	var (
		mu        sync.Mutex
		succeeded = make([]domain.StudentID, 0, len(ids))
		failed    = map[domain.StudentID]error{}
	)

	var group errgroup.Group
	group.SetLimit(c.maxConcurrency)
	for _, id := range ids {
		record := records[id]
		group.Go(func() error {
			err := c.store.WriteAttendance(ctx, record.StudentID, record.Date, record.Status)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed[record.StudentID] = fmt.Errorf("write attendance for student %s: %w", record.StudentID, err)
				return nil
			}
			succeeded = append(succeeded, record.StudentID)
			return nil
		})
	}
	_ = group.Wait()

	if len(failed) == 0 {
		return nil
	}

	sort.Slice(succeeded, func(i, j int) bool { return succeeded[i] < succeeded[j] })
	return &domain.PartialCommitError{Date: date, Succeeded: succeeded, Failed: failed}
}

func sortedIDs(records map[domain.StudentID]domain.Record) []domain.StudentID {
	ids := make([]domain.StudentID, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
