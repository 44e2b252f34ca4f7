package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
	"github.com/mvales/lingolog/internal/review"
	"github.com/mvales/lingolog/internal/worker"
)

// AttemptPersister flushes session attempt events to the store through
// the worker pool. Writes are best-effort: a failure is reported through
// the onError callback and logged, but never blocks a session
// transition. The judgment update for a card is sequenced behind that
// card's reveal insert; writes for different cards may be in flight
// concurrently.
type AttemptPersister struct {
	pool     *worker.Pool
	attempts repository.AttemptRepository
	onError  func(error)
	log      *logger.Logger
}

// NewAttemptPersister creates a new AttemptPersister. onError may be nil.
func NewAttemptPersister(pool *worker.Pool, attempts repository.AttemptRepository, onError func(error)) *AttemptPersister {
	return &AttemptPersister{
		pool:     pool,
		attempts: attempts,
		onError:  onError,
		log:      logger.Default().WithPrefix("attempt_persister"),
	}
}

func (p *AttemptPersister) report(err error) {
	p.log.Warn("attempt write failed, history may not be saved: %v", err)
	if p.onError != nil {
		p.onError(err)
	}
}

// WriteReveal implements review.AttemptWriter.
func (p *AttemptPersister) WriteReveal(exerciseID int64, userAnswer string) review.PendingAttempt {
	pa := &pendingAttempt{persister: p, ready: make(chan struct{})}
	job := &revealJob{
		pa:         pa,
		exerciseID: exerciseID,
		answer:     userAnswer,
		at:         time.Now(),
	}
	if !p.pool.TrySubmit(job) {
		err := fmt.Errorf("attempt queue full, reveal for exercise %d dropped", exerciseID)
		pa.complete(0, err)
		p.report(err)
	}
	return pa
}

// pendingAttempt carries the reveal insert's row id to the judgment
// update for the same card.
type pendingAttempt struct {
	persister *AttemptPersister
	once      sync.Once
	ready     chan struct{}
	id        int64
	err       error
}

func (pa *pendingAttempt) complete(id int64, err error) {
	pa.once.Do(func() {
		pa.id = id
		pa.err = err
		close(pa.ready)
	})
}

// WriteJudgment implements review.PendingAttempt.
func (pa *pendingAttempt) WriteJudgment(remembered bool) {
	job := &judgmentJob{pa: pa, remembered: remembered}
	if !pa.persister.pool.TrySubmit(job) {
		pa.persister.report(fmt.Errorf("attempt queue full, judgment dropped"))
	}
}

type revealJob struct {
	pa         *pendingAttempt
	exerciseID int64
	answer     string
	at         time.Time
}

func (j *revealJob) Name() string { return "attempt-reveal" }

func (j *revealJob) Run(ctx context.Context) error {
	p := j.pa.persister
	id, err := p.attempts.Insert(ctx, models.Attempt{
		ExerciseID:  j.exerciseID,
		UserAnswer:  j.answer,
		AttemptedAt: j.at,
	})
	j.pa.complete(id, err)
	if err != nil {
		p.report(fmt.Errorf("insert attempt for exercise %d: %w", j.exerciseID, err))
		return err
	}
	return nil
}

type judgmentJob struct {
	pa         *pendingAttempt
	remembered bool
}

func (j *judgmentJob) Name() string { return "attempt-judgment" }

func (j *judgmentJob) Run(ctx context.Context) error {
	select {
	case <-j.pa.ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	p := j.pa.persister
	if j.pa.err != nil {
		err := fmt.Errorf("reveal write failed, judgment dropped: %w", j.pa.err)
		p.report(err)
		return err
	}
	if err := p.attempts.SetJudgment(ctx, j.pa.id, j.remembered); err != nil {
		p.report(fmt.Errorf("set judgment on attempt %d: %w", j.pa.id, err))
		return err
	}
	return nil
}
