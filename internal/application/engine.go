package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultTickInterval      = 2 * time.Second
	DefaultFrameTimeout      = time.Second
	DefaultRecognizerTimeout = 1500 * time.Millisecond
)

type EngineConfig struct {
	Interval          time.Duration
	AcceptThreshold   float64
	FrameTimeout      time.Duration
	RecognizerTimeout time.Duration
	CommitPolicy      CommitPolicy
	CommitConcurrency int
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Interval:          DefaultTickInterval,
		AcceptThreshold:   domain.DefaultAcceptThreshold,
		FrameTimeout:      DefaultFrameTimeout,
		RecognizerTimeout: DefaultRecognizerTimeout,
		CommitPolicy:      CommitPolicyBatch,
		CommitConcurrency: DefaultCommitConcurrency,
	}
}

func (c EngineConfig) withDefaults() EngineConfig {
	defaults := DefaultEngineConfig()
	if c.Interval <= 0 {
		c.Interval = defaults.Interval
	}
	if c.AcceptThreshold < 0 {
		c.AcceptThreshold = defaults.AcceptThreshold
	}
	if c.FrameTimeout <= 0 {
		c.FrameTimeout = defaults.FrameTimeout
	}
	if c.RecognizerTimeout <= 0 {
		c.RecognizerTimeout = defaults.RecognizerTimeout
	}
	if !c.CommitPolicy.Valid() {
		c.CommitPolicy = defaults.CommitPolicy
	}
	if c.CommitConcurrency <= 0 {
		c.CommitConcurrency = defaults.CommitConcurrency
	}

	return c
}

type SessionEngineDeps struct {
	Roster     ports.RosterProvider
	Device     ports.CaptureDevice
	Recognizer ports.Recognizer
	Store      ports.AttendanceStore
	// Archive is optional.
	Archive ports.SessionArchive
	Clock   ports.Clock
	Logger  *slog.Logger
	NewID   func() string
}

// SessionEngine runs at most one recognition session at a time. The loop owns the
// session's dedup set while it runs; Stop and device loss both funnel into a
// single finalize that releases capture, commits and archives.
type SessionEngine struct {
	cfg        EngineConfig
	roster     ports.RosterProvider
	device     ports.CaptureDevice
	recognizer ports.Recognizer
	store      ports.AttendanceStore
	archive    ports.SessionArchive
	clock      ports.Clock
	logger     *slog.Logger
	newID      func() string
	committer  *BatchCommitter
	tracer     trace.Tracer

	mu       sync.Mutex
	starting bool
	run      *sessionRun
	last     *sessionRun
}

func NewSessionEngine(cfg EngineConfig, deps SessionEngineDeps) *SessionEngine {
	cfg = cfg.withDefaults()
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	return &SessionEngine{
		cfg:        cfg,
		roster:     deps.Roster,
		device:     deps.Device,
		recognizer: deps.Recognizer,
		store:      deps.Store,
		archive:    deps.Archive,
		clock:      deps.Clock,
		logger:     deps.Logger,
		newID:      deps.NewID,
		committer:  NewBatchCommitter(deps.Store, cfg.AcceptThreshold, cfg.CommitConcurrency),
		tracer:     tracer(),
	}
}

func (e *SessionEngine) Config() EngineConfig {
	return e.cfg
}

func (e *SessionEngine) Committer() *BatchCommitter {
	return e.committer
}

type sessionRun struct {
	handle      ports.CaptureHandle
	roster      []domain.Student
	rosterByKey map[string]domain.Student
	baseCtx     context.Context
	cancel      context.CancelFunc
	loopDone    chan struct{}
	done        chan struct{}
	finalize    sync.Once

	mu      sync.Mutex
	session *domain.Session
	stats   EngineStats

	result StopResult
	err    error
}

func (r *sessionRun) snapshot() domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.session.Clone()
}

func (r *sessionRun) recognitions() []domain.Recognition {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.session.Recognitions()
}

func (r *sessionRun) statsSnapshot() EngineStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.stats
}

func (r *sessionRun) count(update func(*EngineStats)) {
	r.mu.Lock()
	update(&r.stats)
	r.mu.Unlock()
}

func (r *sessionRun) accept(detection domain.Detection, now time.Time, threshold float64) (domain.Recognition, domain.AcceptOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Only roster members are recorded, so a session never holds more
	// recognitions than enrolled students.
	if detection.Accepted(threshold) && r.session.State == domain.SessionActive {
		if _, ok := r.rosterByKey[domain.IdentityKey(detection.Identity)]; !ok {
			r.stats.Unenrolled++
			return domain.Recognition{}, domain.OutcomeUnenrolled
		}
	}

	recognition, outcome := r.session.Accept(detection, now, threshold)
	switch outcome {
	case domain.OutcomeAccepted:
		r.stats.Accepted++
	case domain.OutcomeRejected:
		r.stats.Rejected++
	case domain.OutcomeDuplicate:
		r.stats.Duplicates++
	}

	return recognition, outcome
}

func (r *sessionRun) state() domain.SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.session.State
}

// Start validates the selection, loads the roster, acquires capture and spawns
// the recognition loop. Nothing is left acquired when it fails.
func (e *SessionEngine) Start(ctx context.Context, cmd StartSessionCommand) (domain.Session, error) {
	e.mu.Lock()
	if e.run != nil || e.starting {
		e.mu.Unlock()
		return domain.Session{}, domain.ErrAlreadyActive
	}
	e.starting = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.starting = false
		e.mu.Unlock()
	}()

	cmd.normalize()
	if err := validateCommand(cmd); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrInvalidSelection, err)
	}

	roster, err := e.roster.ListStudents(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load roster: %w", err)
	}

	handle, err := e.device.Acquire(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDeviceUnavailable) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("%w: %w", domain.ErrDeviceUnavailable, err)
	}

	session := domain.NewSession(e.newID(), cmd.ClassID, cmd.Subject)
	if err := session.Activate(e.clock.Now()); err != nil {
		releaseErr := handle.Release()
		return domain.Session{}, errors.Join(fmt.Errorf("activate session: %w", err), releaseErr)
	}

	rosterByKey := make(map[string]domain.Student, len(roster))
	for _, student := range roster {
		rosterByKey[domain.IdentityKey(student.Name)] = student
	}

	baseCtx := context.WithoutCancel(ctx)
	loopCtx, cancel := context.WithCancel(baseCtx)
	run := &sessionRun{
		handle:      handle,
		roster:      roster,
		rosterByKey: rosterByKey,
		baseCtx:     baseCtx,
		cancel:      cancel,
		loopDone:    make(chan struct{}),
		done:        make(chan struct{}),
		session:     session,
	}

	e.mu.Lock()
	e.run = run
	e.mu.Unlock()

	e.logger.Info("attendance session started",
		"session_id", session.ID,
		"class_id", session.ClassID,
		"subject", session.Subject,
		"roster_size", len(roster),
		"commit_policy", string(e.cfg.CommitPolicy),
	)

	go e.loop(loopCtx, run)

	return run.snapshot(), nil
}

// Stop cancels the loop, waits for it to exit, releases capture, ends the
// session, commits its recognitions and archives it. When the session already
// ended because the device was lost, Stop returns that outcome.
func (e *SessionEngine) Stop(ctx context.Context) (StopResult, error) {
	e.mu.Lock()
	run := e.run
	e.mu.Unlock()
	if run == nil {
		return StopResult{}, domain.ErrSessionNotActive
	}

	e.finalize(ctx, run, StopReasonStopped)

	return waitRun(ctx, run)
}

// Wait blocks until the current session ends, by Stop or by device loss, and
// returns its outcome. With no running session it returns the previous outcome.
func (e *SessionEngine) Wait(ctx context.Context) (StopResult, error) {
	e.mu.Lock()
	run := e.run
	if run == nil {
		run = e.last
	}
	e.mu.Unlock()
	if run == nil {
		return StopResult{}, domain.ErrSessionNotActive
	}

	return waitRun(ctx, run)
}

func waitRun(ctx context.Context, run *sessionRun) (StopResult, error) {
	// A finished run wins over a context that is done at the same time.
	select {
	case <-run.done:
		return run.result, run.err
	default:
	}

	select {
	case <-run.done:
		return run.result, run.err
	case <-ctx.Done():
		select {
		case <-run.done:
			return run.result, run.err
		default:
		}
		return StopResult{}, ctx.Err()
	}
}

func (e *SessionEngine) State() domain.SessionState {
	e.mu.Lock()
	run := e.run
	e.mu.Unlock()
	if run == nil {
		return domain.SessionIdle
	}

	return run.state()
}

func (e *SessionEngine) Current() (domain.Session, bool) {
	e.mu.Lock()
	run := e.run
	e.mu.Unlock()
	if run == nil {
		return domain.Session{}, false
	}

	return run.snapshot(), true
}

// Recognitions returns the running session's recognitions, or the previous
// session's when none is running.
func (e *SessionEngine) Recognitions() []domain.Recognition {
	run := e.currentOrLast()
	if run == nil {
		return nil
	}

	return run.recognitions()
}

func (e *SessionEngine) Stats() EngineStats {
	run := e.currentOrLast()
	if run == nil {
		return EngineStats{}
	}

	return run.statsSnapshot()
}

func (e *SessionEngine) currentOrLast() *sessionRun {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.run != nil {
		return e.run
	}
	return e.last
}

func (e *SessionEngine) loop(ctx context.Context, run *sessionRun) {
	defer close(run.loopDone)

	timer := time.NewTimer(e.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := e.tick(ctx, run); errors.Is(err, domain.ErrDeviceLost) {
			e.logger.Error("capture device lost, ending session",
				"session_id", run.session.ID,
				"error", err,
			)
			go e.finalize(run.baseCtx, run, StopReasonDeviceLost)
			return
		}

		timer.Reset(e.cfg.Interval)
	}
}

// tick fetches one frame, recognizes it and applies the detections. Only device
// loss is returned; every other failure is logged and counted.
func (e *SessionEngine) tick(ctx context.Context, run *sessionRun) error {
	var n int
	run.count(func(stats *EngineStats) {
		stats.Ticks++
		n = stats.Ticks
	})

	ctx, span := e.tracer.Start(ctx, "attendance.tick", trace.WithAttributes(
		attribute.String("session.id", run.session.ID),
		attribute.Int("session.tick", n),
	))
	defer span.End()

	frameCtx, cancel := context.WithTimeout(ctx, e.cfg.FrameTimeout)
	frame, err := run.handle.NextFrame(frameCtx)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrFrameTimeout) {
			err = fmt.Errorf("%w: %w", domain.ErrFrameTimeout, err)
		}
		run.count(func(stats *EngineStats) { stats.FrameErrors++ })
		span.RecordError(err)
		if errors.Is(err, domain.ErrDeviceLost) {
			span.SetStatus(codes.Error, "device lost")
			return err
		}
		e.logger.Warn("frame capture failed", "session_id", run.session.ID, "tick", n, "error", err)
		return nil
	}
	run.count(func(stats *EngineStats) { stats.Frames++ })

	detections, err := e.recognize(ctx, frame)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		run.count(func(stats *EngineStats) {
			if errors.Is(err, domain.ErrRecognizerTimeout) {
				stats.RecognizerTimeouts++
			} else {
				stats.RecognizerErrors++
			}
		})
		span.RecordError(err)
		e.logger.Warn("recognition failed", "session_id", run.session.ID, "tick", n, "frame_trace_id", frame.TraceID, "error", err)
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}

	accepted, rejected := 0, 0
	now := e.clock.Now()
	for _, detection := range detections {
		recognition, outcome := run.accept(detection, now, e.cfg.AcceptThreshold)
		switch outcome {
		case domain.OutcomeAccepted:
			accepted++
			e.logger.Info("student recognized",
				"session_id", run.session.ID,
				"tick", n,
				"identity", recognition.Identity,
				"confidence", recognition.Confidence,
			)
			if e.cfg.CommitPolicy == CommitPolicyPerDetection {
				e.writeLive(ctx, run, recognition)
			}
		case domain.OutcomeRejected:
			rejected++
			e.logger.Debug("detection below threshold",
				"session_id", run.session.ID,
				"tick", n,
				"identity", detection.Identity,
				"confidence", detection.Confidence,
			)
		case domain.OutcomeUnenrolled:
			e.logger.Debug("recognized identity is not enrolled",
				"session_id", run.session.ID,
				"tick", n,
				"identity", detection.Identity,
				"confidence", detection.Confidence,
			)
		case domain.OutcomeDuplicate:
			e.logger.Debug("identity already recognized", "session_id", run.session.ID, "tick", n, "identity", detection.Identity)
		}
	}

	span.SetAttributes(
		attribute.Int("attendance.detections", len(detections)),
		attribute.Int("attendance.accepted", accepted),
		attribute.Int("attendance.rejected", rejected),
	)

	return nil
}

// recognize bounds the recognizer call. A stop or a timeout abandons the call;
// its result is discarded when it eventually arrives.
func (e *SessionEngine) recognize(ctx context.Context, frame domain.Frame) ([]domain.Detection, error) {
	recognizeCtx, cancel := context.WithTimeout(ctx, e.cfg.RecognizerTimeout)
	defer cancel()

	type result struct {
		detections []domain.Detection
		err        error
	}
	out := make(chan result, 1)
	go func() {
		detections, err := e.recognizer.Recognize(recognizeCtx, frame)
		out <- result{detections: detections, err: err}
	}()

	select {
	case res := <-out:
		if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrRecognizerTimeout, res.err)
		}
		return res.detections, res.err
	case <-recognizeCtx.Done():
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrRecognizerTimeout
	}
}

func (e *SessionEngine) writeLive(ctx context.Context, run *sessionRun, recognition domain.Recognition) {
	student, ok := run.rosterByKey[domain.IdentityKey(recognition.Identity)]
	if !ok {
		e.logger.Debug("recognized identity is not enrolled", "session_id", run.session.ID, "identity", recognition.Identity)
		return
	}

	date := domain.DateOf(run.session.StartedAt)
	if err := e.store.WriteAttendance(ctx, student.ID, date, domain.StatusPresent); err != nil {
		run.count(func(stats *EngineStats) { stats.LiveWriteErrors++ })
		e.logger.Warn("live attendance write failed",
			"session_id", run.session.ID,
			"student_id", string(student.ID),
			"error", err,
		)
		return
	}
	run.count(func(stats *EngineStats) { stats.LiveWrites++ })
}

func (e *SessionEngine) finalize(ctx context.Context, run *sessionRun, reason StopReason) {
	run.finalize.Do(func() {
		defer close(run.done)

		run.cancel()
		<-run.loopDone

		var releaseErr error
		if err := run.handle.Release(); err != nil {
			releaseErr = fmt.Errorf("release capture: %w", err)
			e.logger.Error("release capture handle", "session_id", run.session.ID, "error", err)
		}

		endedAt := e.clock.Now()
		run.mu.Lock()
		_ = run.session.End(endedAt)
		snapshot := run.session.Clone()
		stats := run.stats
		run.mu.Unlock()

		recognitions := snapshot.Recognitions()
		records, err := e.committer.Commit(ctx, CommitBatch{
			Date:         domain.DateOf(snapshot.StartedAt),
			RecordedAt:   endedAt,
			Recognitions: recognitions,
			Roster:       run.roster,
		})

		present, absent := domain.CountStatuses(records)
		archived := domain.SessionRecord{
			ID:           snapshot.ID,
			ClassID:      snapshot.ClassID,
			Subject:      snapshot.Subject,
			StartedAt:    snapshot.StartedAt,
			EndedAt:      snapshot.EndedAt,
			Recognitions: recognitions,
			Present:      present,
			Absent:       absent,
		}
		if err != nil {
			archived.CommitError = err.Error()
			e.logger.Error("attendance commit incomplete", "session_id", snapshot.ID, "error", err)
		}

		if e.archive != nil {
			if archiveErr := e.archive.Save(ctx, archived); archiveErr != nil {
				err = errors.Join(err, fmt.Errorf("archive session: %w", archiveErr))
			}
		}

		run.result = StopResult{
			Session:      snapshot,
			Reason:       reason,
			Recognitions: recognitions,
			Records:      records,
			Stats:        stats,
		}
		if releaseErr != nil {
			err = errors.Join(err, releaseErr)
		}
		run.err = err

		e.logger.Info("attendance session ended",
			"session_id", snapshot.ID,
			"reason", string(reason),
			"recognized", len(recognitions),
			"present", present,
			"absent", absent,
		)

		e.mu.Lock()
		if e.run == run {
			e.run = nil
		}
		e.last = run
		e.mu.Unlock()
	})
}
