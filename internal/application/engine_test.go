package application

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bnema/attendance-cli/internal/domain"
	"github.com/bnema/attendance-cli/internal/ports"
	"github.com/bnema/attendance-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineStart = time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeHandle struct {
	mu       sync.Mutex
	frames   int
	released int
	// failAt maps a 1-based frame number to the error NextFrame returns for it.
	failAt map[int]error
	// blockAt makes NextFrame wait for its context on the given frame number.
	blockAt    map[int]bool
	releaseErr error
}

func (h *fakeHandle) NextFrame(ctx context.Context) (domain.Frame, error) {
	h.mu.Lock()
	if h.released > 0 {
		h.mu.Unlock()
		return domain.Frame{}, domain.ErrCaptureReleased
	}
	h.frames++
	n := h.frames
	err := h.failAt[n]
	block := h.blockAt[n]
	h.mu.Unlock()

	if block {
		<-ctx.Done()
		return domain.Frame{}, ctx.Err()
	}
	if err != nil {
		return domain.Frame{}, err
	}

	return domain.Frame{Seq: uint64(n), CapturedAt: engineStart}, nil
}

func (h *fakeHandle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.released++
	return h.releaseErr
}

func (h *fakeHandle) counts() (frames, released int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames, h.released
}

type fakeDevice struct {
	handle *fakeHandle
}

func (d fakeDevice) Acquire(context.Context) (ports.CaptureHandle, error) {
	return d.handle, nil
}

type fakeRecognizer struct {
	mu        sync.Mutex
	calls     int
	responses [][]domain.Detection
	// blockAt makes Recognize wait for its context on the given 1-based call.
	blockAt map[int]bool
}

func (r *fakeRecognizer) Recognize(ctx context.Context, _ domain.Frame) ([]domain.Detection, error) {
	r.mu.Lock()
	r.calls++
	n := r.calls
	block := r.blockAt[n]
	var detections []domain.Detection
	if n <= len(r.responses) {
		detections = r.responses[n-1]
	}
	r.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	return detections, nil
}

type memoryStore struct {
	mu      sync.Mutex
	writes  map[domain.StudentID]domain.Status
	history []domain.StudentID
	fail    map[domain.StudentID]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{writes: map[domain.StudentID]domain.Status{}, fail: map[domain.StudentID]error{}}
}

func (s *memoryStore) WriteAttendance(_ context.Context, id domain.StudentID, _ string, status domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail[id]; err != nil {
		return err
	}
	s.writes[id] = status
	s.history = append(s.history, id)
	return nil
}

func (s *memoryStore) ListByDate(context.Context, string) ([]domain.Record, error) { return nil, nil }

func (s *memoryStore) ListRecent(context.Context, int) ([]domain.Record, error) { return nil, nil }

func (s *memoryStore) ListAll(context.Context) ([]domain.Record, error) { return nil, nil }

func (s *memoryStore) DeleteByStudent(context.Context, domain.StudentID) error { return nil }

func (s *memoryStore) status(id domain.StudentID) (domain.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.writes[id]
	return status, ok
}

func (s *memoryStore) clearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = map[domain.StudentID]error{}
}

type memoryArchive struct {
	mu       sync.Mutex
	sessions []domain.SessionRecord
}

func (a *memoryArchive) Save(_ context.Context, record domain.SessionRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions = append(a.sessions, record)
	return nil
}

func (a *memoryArchive) List(context.Context, int) ([]domain.SessionRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.SessionRecord(nil), a.sessions...), nil
}

type rosterList []domain.Student

func (r rosterList) ListStudents(context.Context) ([]domain.Student, error) {
	return append([]domain.Student(nil), r...), nil
}

func classRoster() rosterList {
	return rosterList{
		{ID: "1", RollNumber: "R1", Name: "Aswin"},
		{ID: "2", RollNumber: "R2", Name: "Edwin"},
		{ID: "3", RollNumber: "R3", Name: "Tom"},
	}
}

type engineFixture struct {
	engine     *SessionEngine
	handle     *fakeHandle
	recognizer *fakeRecognizer
	store      *memoryStore
	archive    *memoryArchive
}

func newEngineFixture(t *testing.T, cfg EngineConfig, responses ...[]domain.Detection) *engineFixture {
	t.Helper()

	f := &engineFixture{
		handle:     &fakeHandle{},
		recognizer: &fakeRecognizer{responses: responses},
		store:      newMemoryStore(),
		archive:    &memoryArchive{},
	}
	f.engine = NewSessionEngine(cfg, SessionEngineDeps{
		Roster:     classRoster(),
		Device:     fakeDevice{handle: f.handle},
		Recognizer: f.recognizer,
		Store:      f.store,
		Archive:    f.archive,
		Clock:      fixedClock{now: engineStart},
		NewID:      func() string { return "session-1" },
	})

	return f
}

func fastEngineConfig() EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.Interval = 2 * time.Millisecond
	cfg.FrameTimeout = 50 * time.Millisecond
	cfg.RecognizerTimeout = 50 * time.Millisecond
	return cfg
}

func mathSelection() StartSessionCommand {
	return StartSessionCommand{ClassID: "S6-CSE", Subject: "Math"}
}

func TestSessionEngineRecognizesAboveThresholdAndCommitsOneStatusPerStudent(t *testing.T) {
	f := newEngineFixture(t, fastEngineConfig(),
		[]domain.Detection{{Identity: "Aswin", Confidence: 92}},
		[]domain.Detection{{Identity: "Tom", Confidence: 75}},
		[]domain.Detection{{Identity: " aswin ", Confidence: 99}, {Identity: "Edwin", Confidence: 80}},
	)

	session, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, session.State)
	assert.Equal(t, "session-1", session.ID)
	assert.Equal(t, domain.SessionActive, f.engine.State())

	require.Eventually(t, func() bool { return f.engine.Stats().Ticks >= 4 }, time.Second, time.Millisecond)

	result, err := f.engine.Stop(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StopReasonStopped, result.Reason)
	assert.Equal(t, domain.SessionEnded, result.Session.State)
	require.Len(t, result.Recognitions, 1)
	assert.Equal(t, "Aswin", result.Recognitions[0].Identity)
	assert.Equal(t, 92.0, result.Recognitions[0].Confidence)

	require.Len(t, result.Records, 3)
	assert.Equal(t, domain.StatusPresent, result.Records["1"].Status)
	assert.Equal(t, domain.StatusAbsent, result.Records["2"].Status)
	assert.Equal(t, domain.StatusAbsent, result.Records["3"].Status)
	for _, record := range result.Records {
		assert.Equal(t, "2026-03-09", record.Date)
	}

	stats := result.Stats
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 2, stats.Rejected)
	assert.Equal(t, 1, stats.Duplicates)

	_, released := f.handle.counts()
	assert.Equal(t, 1, released)
	assert.Equal(t, domain.SessionIdle, f.engine.State())

	status, ok := f.store.status("1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPresent, status)

	sessions, err := f.archive.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "S6-CSE", sessions[0].ClassID)
	assert.Equal(t, 1, sessions[0].Present)
	assert.Equal(t, 2, sessions[0].Absent)
	assert.True(t, sessions[0].Complete())
}

func TestSessionEngineStartRejectsBlankSelection(t *testing.T) {
	device := mocks.NewMockCaptureDevice(t)
	roster := mocks.NewMockRosterProvider(t)
	engine := NewSessionEngine(fastEngineConfig(), SessionEngineDeps{
		Roster:     roster,
		Device:     device,
		Recognizer: &fakeRecognizer{},
		Store:      newMemoryStore(),
	})

	_, err := engine.Start(context.Background(), StartSessionCommand{ClassID: "", Subject: "Math"})
	require.ErrorIs(t, err, domain.ErrInvalidSelection)
	assert.Equal(t, domain.SessionIdle, engine.State())

	_, err = engine.Start(context.Background(), StartSessionCommand{ClassID: "S6-CSE", Subject: "   "})
	require.ErrorIs(t, err, domain.ErrInvalidSelection)
	assert.Equal(t, domain.SessionIdle, engine.State())
}

func TestSessionEngineStartFailsWhenAlreadyActive(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.Interval = time.Hour
	f := newEngineFixture(t, cfg)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)

	_, err = f.engine.Start(context.Background(), StartSessionCommand{ClassID: "S6-ECE", Subject: "Physics"})
	require.ErrorIs(t, err, domain.ErrAlreadyActive)

	current, ok := f.engine.Current()
	require.True(t, ok)
	assert.Equal(t, "S6-CSE", current.ClassID)

	_, err = f.engine.Stop(context.Background())
	require.NoError(t, err)
}

func TestSessionEngineStartDeviceUnavailableStaysIdle(t *testing.T) {
	device := mocks.NewMockCaptureDevice(t)
	device.EXPECT().Acquire(mockAnyContext()).Return(nil, errors.New("no camera"))

	engine := NewSessionEngine(fastEngineConfig(), SessionEngineDeps{
		Roster:     classRoster(),
		Device:     device,
		Recognizer: &fakeRecognizer{},
		Store:      newMemoryStore(),
	})

	_, err := engine.Start(context.Background(), mathSelection())
	require.ErrorIs(t, err, domain.ErrDeviceUnavailable)
	assert.ErrorContains(t, err, "no camera")
	assert.Equal(t, domain.SessionIdle, engine.State())

	_, ok := engine.Current()
	assert.False(t, ok)
}

func TestSessionEngineStopImmediatelyAfterStartReleasesHandle(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.Interval = time.Hour
	f := newEngineFixture(t, cfg)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)

	result, err := f.engine.Stop(context.Background())
	require.NoError(t, err)

	frames, released := f.handle.counts()
	assert.Equal(t, 0, frames)
	assert.Equal(t, 1, released)
	assert.Empty(t, result.Recognitions)
	require.Len(t, result.Records, 3)
	for _, record := range result.Records {
		assert.Equal(t, domain.StatusAbsent, record.Status)
	}
}

func TestSessionEngineStopWithoutSession(t *testing.T) {
	f := newEngineFixture(t, fastEngineConfig())

	_, err := f.engine.Stop(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotActive)

	_, err = f.engine.Wait(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotActive)
}

func TestSessionEngineCanRestartAfterStop(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.Interval = time.Hour
	f := newEngineFixture(t, cfg)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	_, err = f.engine.Stop(context.Background())
	require.NoError(t, err)

	_, err = f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	_, err = f.engine.Stop(context.Background())
	require.NoError(t, err)

	_, released := f.handle.counts()
	assert.Equal(t, 2, released)
}

func TestSessionEngineDeviceLossEndsSessionAndCommits(t *testing.T) {
	f := newEngineFixture(t, fastEngineConfig(),
		[]domain.Detection{{Identity: "Edwin", Confidence: 90}},
	)
	f.handle.failAt = map[int]error{2: domain.ErrDeviceLost}

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	result, err := f.engine.Wait(ctx)
	require.NoError(t, err)

	assert.Equal(t, StopReasonDeviceLost, result.Reason)
	assert.Equal(t, domain.StatusPresent, result.Records["2"].Status)
	assert.Equal(t, domain.StatusAbsent, result.Records["1"].Status)
	assert.Equal(t, 1, result.Stats.FrameErrors)

	_, released := f.handle.counts()
	assert.Equal(t, 1, released)
	assert.Equal(t, domain.SessionIdle, f.engine.State())

	_, err = f.engine.Stop(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotActive)
}

func TestSessionEngineRecognizerTimeoutDoesNotEndSession(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.RecognizerTimeout = 5 * time.Millisecond
	f := newEngineFixture(t, cfg,
		nil,
		[]domain.Detection{{Identity: "Tom", Confidence: 88}},
	)
	f.recognizer.blockAt = map[int]bool{1: true}

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)

	require.Eventually(t, func() bool { return f.engine.Stats().Accepted == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, domain.SessionActive, f.engine.State())
	assert.Equal(t, 1, f.engine.Stats().RecognizerTimeouts)

	result, err := f.engine.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPresent, result.Records["3"].Status)
}

func TestSessionEngineFrameTimeoutIsCountedNotFatal(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.FrameTimeout = 5 * time.Millisecond
	f := newEngineFixture(t, cfg,
		[]domain.Detection{{Identity: "Aswin", Confidence: 81}},
	)
	f.handle.blockAt = map[int]bool{1: true}

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)

	require.Eventually(t, func() bool { return f.engine.Stats().Accepted == 1 }, time.Second, time.Millisecond)
	stats := f.engine.Stats()
	assert.Equal(t, 1, stats.FrameErrors)

	_, err = f.engine.Stop(context.Background())
	require.NoError(t, err)
}

func TestSessionEngineStopPreemptsPendingRecognition(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.RecognizerTimeout = time.Hour
	f := newEngineFixture(t, cfg)
	f.recognizer.blockAt = map[int]bool{1: true}

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return f.engine.Stats().Frames == 1 }, time.Second, time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_, _ = f.engine.Stop(context.Background())
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not preempt the pending recognition")
	}

	_, released := f.handle.counts()
	assert.Equal(t, 1, released)
}

func TestSessionEnginePerDetectionPolicyWritesOnAcceptance(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.CommitPolicy = CommitPolicyPerDetection
	f := newEngineFixture(t, cfg,
		[]domain.Detection{{Identity: "Edwin", Confidence: 97}, {Identity: "Stranger", Confidence: 99}},
	)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)

	require.Eventually(t, func() bool { return f.engine.Stats().LiveWrites == 1 }, time.Second, time.Millisecond)
	status, ok := f.store.status("2")
	require.True(t, ok)
	assert.Equal(t, domain.StatusPresent, status)

	_, ok = f.store.status("1")
	assert.False(t, ok)

	result, err := f.engine.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPresent, result.Records["2"].Status)
	assert.Equal(t, domain.StatusAbsent, result.Records["1"].Status)
	assert.Len(t, result.Recognitions, 2)
}

func TestSessionEnginePartialCommitIsReportedAndRetryable(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.Interval = time.Hour
	f := newEngineFixture(t, cfg)
	f.store.fail["3"] = errors.New("disk full")

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)

	result, err := f.engine.Stop(context.Background())
	require.Error(t, err)

	var partial *domain.PartialCommitError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []domain.StudentID{"3"}, partial.FailedIDs())
	assert.Equal(t, []domain.StudentID{"1", "2"}, partial.Succeeded)
	require.Len(t, result.Records, 3)

	sessions, listErr := f.archive.List(context.Background(), 0)
	require.NoError(t, listErr)
	require.Len(t, sessions, 1)
	assert.False(t, sessions[0].Complete())

	f.store.clearFailures()
	require.NoError(t, f.engine.Committer().Retry(context.Background(), result.Records, partial.FailedIDs()))

	status, ok := f.store.status("3")
	require.True(t, ok)
	assert.Equal(t, domain.StatusAbsent, status)
}

func TestSessionEngineRecognitionsSnapshotIsIndependent(t *testing.T) {
	f := newEngineFixture(t, fastEngineConfig(),
		[]domain.Detection{{Identity: "Aswin", Confidence: 92}},
	)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(f.engine.Recognitions()) == 1 }, time.Second, time.Millisecond)

	snapshot := f.engine.Recognitions()
	snapshot[0].Identity = "Mallory"

	_, err = f.engine.Stop(context.Background())
	require.NoError(t, err)

	recognitions := f.engine.Recognitions()
	require.Len(t, recognitions, 1)
	assert.Equal(t, "Aswin", recognitions[0].Identity)
}

func TestSessionEngineLoadsRosterBeforeAcquiringCapture(t *testing.T) {
	roster := mocks.NewMockRosterProvider(t)
	roster.EXPECT().ListStudents(mockAnyContext()).Return(nil, errors.New("roster offline"))
	device := mocks.NewMockCaptureDevice(t)

	engine := NewSessionEngine(fastEngineConfig(), SessionEngineDeps{
		Roster:     roster,
		Device:     device,
		Recognizer: &fakeRecognizer{},
		Store:      newMemoryStore(),
	})

	_, err := engine.Start(context.Background(), mathSelection())
	require.ErrorContains(t, err, "load roster: roster offline")
	assert.Equal(t, domain.SessionIdle, engine.State())
}

func writtenIDs(store *memoryStore) []domain.StudentID {
	store.mu.Lock()
	defer store.mu.Unlock()

	ids := make([]domain.StudentID, 0, len(store.writes))
	for id := range store.writes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestSessionEngineCommitWritesEveryRosterMember(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.Interval = time.Hour
	f := newEngineFixture(t, cfg)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	_, err = f.engine.Stop(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.StudentID{"1", "2", "3"}, writtenIDs(f.store))
}

func TestSessionEngineIgnoresIdentitiesOutsideRoster(t *testing.T) {
	f := newEngineFixture(t, fastEngineConfig(),
		[]domain.Detection{
			{Identity: "Stranger", Confidence: 95},
			{Identity: "Visitor", Confidence: 95},
			{Identity: "Guest", Confidence: 95},
			{Identity: "Intruder", Confidence: 95},
			{Identity: "Aswin", Confidence: 92},
		},
	)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return f.engine.Stats().Ticks >= 2 }, time.Second, time.Millisecond)

	result, err := f.engine.Stop(context.Background())
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.Recognitions), len(classRoster()))
	require.Len(t, result.Recognitions, 1)
	assert.Equal(t, "Aswin", result.Recognitions[0].Identity)
	assert.Equal(t, 1, result.Stats.Accepted)
	assert.Equal(t, 4, result.Stats.Unenrolled)

	sessions, err := f.archive.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Len(t, sessions[0].Recognitions, 1)
	assert.Equal(t, 1, sessions[0].Present)
}

func TestNewSessionEngineKeepsZeroAcceptThreshold(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.AcceptThreshold = 0
	f := newEngineFixture(t, cfg)
	assert.Equal(t, 0.0, f.engine.Config().AcceptThreshold)

	cfg.AcceptThreshold = -1
	f = newEngineFixture(t, cfg)
	assert.Equal(t, domain.DefaultAcceptThreshold, f.engine.Config().AcceptThreshold)
}

func TestSessionEngineZeroThresholdAcceptsAnyPositiveConfidence(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.AcceptThreshold = 0
	f := newEngineFixture(t, cfg,
		[]domain.Detection{{Identity: "Tom", Confidence: 12}},
	)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	require.Eventually(t, func() bool { return f.engine.Stats().Accepted == 1 }, time.Second, time.Millisecond)

	result, err := f.engine.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPresent, result.Records["3"].Status)
}

func TestSessionEngineWaitReturnsFinishedOutcomeWithDoneContext(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.Interval = time.Hour
	f := newEngineFixture(t, cfg)

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)
	_, err = f.engine.Stop(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for range 50 {
		result, err := f.engine.Wait(ctx)
		require.NoError(t, err)
		assert.Equal(t, "session-1", result.Session.ID)
	}
}

func TestSessionEngineStopReportsReleaseFailure(t *testing.T) {
	cfg := fastEngineConfig()
	cfg.Interval = time.Hour
	f := newEngineFixture(t, cfg)
	f.handle.releaseErr = errors.New("usb reset")

	_, err := f.engine.Start(context.Background(), mathSelection())
	require.NoError(t, err)

	result, err := f.engine.Stop(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release capture: usb reset")
	require.Len(t, result.Records, 3)
	assert.Equal(t, []domain.StudentID{"1", "2", "3"}, writtenIDs(f.store))
	assert.Equal(t, domain.SessionIdle, f.engine.State())
}
