package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/mvales/lingolog/internal/services"
)

// Server holds the HTTP handlers' dependencies.
type Server struct {
	LearnerService  services.LearnerService
	DiaryService    services.DiaryService
	ExerciseService services.ExerciseService
	ReviewService   services.ReviewService
	StatsService    services.StatsService

	validate *validator.Validate
}

// NewServer creates a Server with a configured payload validator.
func NewServer(
	learners services.LearnerService,
	diary services.DiaryService,
	exercises services.ExerciseService,
	reviews services.ReviewService,
	stats services.StatsService,
) *Server {
	return &Server{
		LearnerService:  learners,
		DiaryService:    diary,
		ExerciseService: exercises,
		ReviewService:   reviews,
		StatsService:    stats,
		validate:        validator.New(validator.WithRequiredStructEnabled()),
	}
}
