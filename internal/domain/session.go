package domain

import (
	"strings"
	"time"
)

type SessionState string

const (
	SessionIdle   SessionState = "idle"
	SessionActive SessionState = "active"
	SessionEnded  SessionState = "ended"
)

type AcceptOutcome int

const (
	OutcomeAccepted AcceptOutcome = iota
	OutcomeRejected
	OutcomeDuplicate
	OutcomeInactive
	// OutcomeUnenrolled is a confident detection of someone outside the roster.
	OutcomeUnenrolled
)

func (o AcceptOutcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeInactive:
		return "inactive"
	case OutcomeUnenrolled:
		return "unenrolled"
	default:
		return "unknown"
	}
}

// Session is one attendance-taking run for a class and subject. The dedup set and
// the recognition list are only mutated through Accept.
type Session struct {
	ID        string
	ClassID   string
	Subject   string
	State     SessionState
	StartedAt time.Time
	EndedAt   time.Time

	seen         map[string]struct{}
	recognitions []Recognition
}

func NewSession(id, classID, subject string) *Session {
	return &Session{
		ID:      id,
		ClassID: strings.TrimSpace(classID),
		Subject: strings.TrimSpace(subject),
		State:   SessionIdle,
	}
}

func (s *Session) Activate(now time.Time) error {
	if s.State == SessionActive {
		return ErrAlreadyActive
	}
	if s.State != SessionIdle {
		return ErrSessionNotActive
	}

	s.State = SessionActive
	s.StartedAt = now
	s.seen = map[string]struct{}{}
	s.recognitions = nil
	return nil
}

func (s *Session) End(now time.Time) error {
	if s.State != SessionActive {
		return ErrSessionNotActive
	}

	s.State = SessionEnded
	s.EndedAt = now
	return nil
}

// Accept records the detection when it clears the threshold and its identity has not
// been seen in this session. The first sighting wins; later ones never update it.
func (s *Session) Accept(detection Detection, now time.Time, threshold float64) (Recognition, AcceptOutcome) {
	if s.State != SessionActive {
		return Recognition{}, OutcomeInactive
	}
	if !detection.Accepted(threshold) {
		return Recognition{}, OutcomeRejected
	}

	key := IdentityKey(detection.Identity)
	if _, ok := s.seen[key]; ok {
		return Recognition{}, OutcomeDuplicate
	}

	recognition := Recognition{
		Identity:   strings.TrimSpace(detection.Identity),
		Confidence: detection.Confidence,
		ObservedAt: now,
	}
	s.seen[key] = struct{}{}
	s.recognitions = append(s.recognitions, recognition)
	return recognition, OutcomeAccepted
}

func (s *Session) Recognitions() []Recognition {
	out := make([]Recognition, len(s.recognitions))
	copy(out, s.recognitions)
	return out
}

func (s *Session) Seen(identity string) bool {
	_, ok := s.seen[IdentityKey(identity)]
	return ok
}

// Clone returns a copy that shares no mutable state with s.
func (s *Session) Clone() Session {
	clone := Session{
		ID:           s.ID,
		ClassID:      s.ClassID,
		Subject:      s.Subject,
		State:        s.State,
		StartedAt:    s.StartedAt,
		EndedAt:      s.EndedAt,
		recognitions: s.Recognitions(),
		seen:         make(map[string]struct{}, len(s.seen)),
	}
	for key := range s.seen {
		clone.seen[key] = struct{}{}
	}

	return clone
}

// IdentityKey is the comparison key between recognizer identities and roster names.
func IdentityKey(identity string) string {
	return strings.ToLower(strings.Join(strings.Fields(identity), " "))
}

type SessionRecord struct {
	ID           string
	ClassID      string
	Subject      string
	StartedAt    time.Time
	EndedAt      time.Time
	Recognitions []Recognition
	Present      int
	Absent       int
	CommitError  string
}

func (r SessionRecord) Complete() bool {
	return r.CommitError == ""
}
