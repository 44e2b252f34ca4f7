package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
	"github.com/mvales/lingolog/internal/repository/sqlite"
	"github.com/mvales/lingolog/internal/testutil"
)

type AttemptRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.AttemptRepository
}

func (s *AttemptRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewAttemptRepository(s.db)
}

func (s *AttemptRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *AttemptRepositorySuite) seedExercise(learnerName string) (learnerID, exerciseID int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO learners (name, native_language, target_language)
		VALUES (?, ?, ?)
	`, learnerName, "en", "ja")
	s.Require().NoError(err)
	learnerID, err = res.LastInsertId()
	s.Require().NoError(err)

	res, err = s.db.ExecContext(ctx, `
		INSERT INTO exercises (learner_id, native_text, target_text, native_language, target_language, scheduled_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, learnerID, "I went to the store", "店に行きました", "en", "ja", time.Now().Format("2006-01-02"))
	s.Require().NoError(err)
	exerciseID, err = res.LastInsertId()
	s.Require().NoError(err)

	return learnerID, exerciseID
}

func (s *AttemptRepositorySuite) TestInsertAndList() {
	ctx := context.Background()
	_, exerciseID := s.seedExercise("alice")

	id, err := s.repo.Insert(ctx, models.Attempt{
		ExerciseID: exerciseID,
		UserAnswer: "店に行った",
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	attempts, err := s.repo.ListForExercise(ctx, exerciseID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)
	s.Assert().Equal(exerciseID, attempts[0].ExerciseID)
	s.Assert().Equal("店に行った", attempts[0].UserAnswer)
	// A freshly revealed attempt has no judgment yet.
	s.Assert().Nil(attempts[0].Remembered)
	s.Assert().False(attempts[0].AttemptedAt.IsZero())
}

func (s *AttemptRepositorySuite) TestListOrderedByAttemptTime() {
	ctx := context.Background()
	_, exerciseID := s.seedExercise("alice")
	now := time.Now()

	remembered := true
	_, err := s.repo.Insert(ctx, models.Attempt{
		ExerciseID:  exerciseID,
		UserAnswer:  "newer",
		Remembered:  &remembered,
		AttemptedAt: now,
	})
	s.Require().NoError(err)

	forgot := false
	_, err = s.repo.Insert(ctx, models.Attempt{
		ExerciseID:  exerciseID,
		UserAnswer:  "older",
		Remembered:  &forgot,
		AttemptedAt: now.Add(-72 * time.Hour),
	})
	s.Require().NoError(err)

	attempts, err := s.repo.ListForExercise(ctx, exerciseID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 2)
	s.Assert().Equal("older", attempts[0].UserAnswer)
	s.Assert().Equal("newer", attempts[1].UserAnswer)
}

func (s *AttemptRepositorySuite) TestSetJudgmentWriteOnce() {
	ctx := context.Background()
	_, exerciseID := s.seedExercise("alice")

	id, err := s.repo.Insert(ctx, models.Attempt{ExerciseID: exerciseID, UserAnswer: "guess"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.SetJudgment(ctx, id, false))

	// A second judgment must not overwrite the first.
	err = s.repo.SetJudgment(ctx, id, true)
	s.Require().Error(err)

	attempts, err := s.repo.ListForExercise(ctx, exerciseID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)
	s.Require().NotNil(attempts[0].Remembered)
	s.Assert().False(*attempts[0].Remembered)
}

func (s *AttemptRepositorySuite) TestSetJudgmentMissingAttempt() {
	err := s.repo.SetJudgment(context.Background(), 9999, true)
	s.Require().Error(err)
}

func (s *AttemptRepositorySuite) TestCountForLearnerBetween() {
	ctx := context.Background()
	learnerID, exerciseID := s.seedExercise("alice")
	_, otherExerciseID := s.seedExercise("bob")
	now := time.Now()

	_, err := s.repo.Insert(ctx, models.Attempt{ExerciseID: exerciseID, AttemptedAt: now})
	s.Require().NoError(err)
	_, err = s.repo.Insert(ctx, models.Attempt{ExerciseID: exerciseID, AttemptedAt: now.Add(-2 * time.Hour)})
	s.Require().NoError(err)

	// Outside the window.
	_, err = s.repo.Insert(ctx, models.Attempt{ExerciseID: exerciseID, AttemptedAt: now.Add(-30 * time.Hour)})
	s.Require().NoError(err)

	// Another learner's attempt in the window.
	_, err = s.repo.Insert(ctx, models.Attempt{ExerciseID: otherExerciseID, AttemptedAt: now})
	s.Require().NoError(err)

	count, err := s.repo.CountForLearnerBetween(ctx, learnerID, now.Add(-24*time.Hour), now.Add(time.Hour))
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func TestAttemptRepositorySuite(t *testing.T) {
	suite.Run(t, new(AttemptRepositorySuite))
}
