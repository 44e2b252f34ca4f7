package review

import (
	"errors"
	"sync"

	"github.com/mvales/lingolog/internal/models"
)

// State of a live review session.
type State int

const (
	StateInSession State = iota
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateInSession:
		return "in_session"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyBatch       = errors.New("review: cannot start a session with an empty batch")
	ErrAlreadyRevealed  = errors.New("review: card already revealed")
	ErrNotRevealed      = errors.New("review: cannot judge before reveal")
	ErrSessionCompleted = errors.New("review: session already completed")
	ErrNotCompleted     = errors.New("review: session not completed")
)

// AttemptWriter receives best-effort persistence events from a live
// session. Implementations must not block the caller; write failures are
// surfaced out of band (logged, warned), never through the state machine.
type AttemptWriter interface {
	// WriteReveal records a new attempt with an unset judgment.
	WriteReveal(exerciseID int64, userAnswer string) PendingAttempt
}

// PendingAttempt sequences the judgment update behind the reveal insert
// for the same card. Writes for different cards may be in flight
// concurrently.
type PendingAttempt interface {
	WriteJudgment(remembered bool)
}

type nopPending struct{}

func (nopPending) WriteJudgment(bool) {}

type nopWriter struct{}

func (nopWriter) WriteReveal(int64, string) PendingAttempt { return nopPending{} }

// NopWriter is an AttemptWriter that drops every event. Useful in tests.
func NopWriter() AttemptWriter { return nopWriter{} }

// Session is the ephemeral flip-card state machine over a sampled batch.
// It is never persisted; abandoning it mid-way leaves whatever attempt
// history was already flushed, with no rollback.
type Session struct {
	mu        sync.Mutex
	items     []models.Exercise
	index     int
	flipped   bool
	answers   map[int64]string
	judgments map[int64]bool
	pending   PendingAttempt
	state     State
	writer    AttemptWriter
}

// NewSession starts a session over the sampled batch. The batch order is
// fixed for the whole session.
func NewSession(items []models.Exercise, writer AttemptWriter) (*Session, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	if writer == nil {
		writer = nopWriter{}
	}
	return &Session{
		items:     items,
		answers:   make(map[int64]string, len(items)),
		judgments: make(map[int64]bool, len(items)),
		writer:    writer,
	}, nil
}

// Current returns the card being shown and whether its answer side is
// revealed.
func (s *Session) Current() (models.Exercise, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCompleted {
		return models.Exercise{}, false, ErrSessionCompleted
	}
	return s.items[s.index], s.flipped, nil
}

// Reveal flips the current card to its answer side and emits the attempt
// write (judgment unset) so a partial attempt is never silently lost if
// the session is abandoned after reveal.
func (s *Session) Reveal(userAnswer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCompleted {
		return ErrSessionCompleted
	}
	if s.flipped {
		return ErrAlreadyRevealed
	}

	ex := s.items[s.index]
	s.flipped = true
	s.answers[ex.ID] = userAnswer
	s.pending = s.writer.WriteReveal(ex.ID, userAnswer)
	return nil
}

// Judge records the recall judgment for the current revealed card and
// advances. Judgment is write-once per card: advancing the index makes
// re-judging impossible. Returns true once the session completes.
func (s *Session) Judge(remembered bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateCompleted {
		return false, ErrSessionCompleted
	}
	if !s.flipped {
		return false, ErrNotRevealed
	}

	ex := s.items[s.index]
	s.judgments[ex.ID] = remembered
	if s.pending != nil {
		s.pending.WriteJudgment(remembered)
		s.pending = nil
	}

	if s.index+1 < len(s.items) {
		s.index++
		s.flipped = false
		return false, nil
	}
	s.state = StateCompleted
	return true, nil
}

// State returns the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Progress returns the zero-based current index and the total item count.
func (s *Session) Progress() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index, len(s.items)
}

// Judgments returns a copy of the judgments recorded so far.
func (s *Session) Judgments() map[int64]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[int64]bool, len(s.judgments))
	for k, v := range s.judgments {
		out[k] = v
	}
	return out
}

// Summary aggregates the session's outcomes. Only valid once completed;
// an abandoned session never produces a summary.
func (s *Session) Summary() (models.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted {
		return models.SessionSummary{}, ErrNotCompleted
	}
	return Summarize(s.items, s.answers, s.judgments), nil
}
