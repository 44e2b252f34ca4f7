package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/learners", s.handleListLearners)
		r.Post("/learners", s.handleCreateLearner)
		r.Post("/learners/{id}/select", s.handleSelectLearner)
		r.Post("/learners/{id}/premium", s.handleSetPremium)
		r.Post("/learners/{id}/delete", s.handleDeleteLearner)

		// Everything below needs an active learner.
		r.Group(func(r chi.Router) {
			r.Use(s.learnerMiddleware)

			r.Get("/diary", s.handleListDiary)
			r.Post("/diary", s.handleCreateDiary)
			r.Get("/diary/{id}", s.handleGetDiary)
			r.Put("/diary/{id}", s.handleUpdateDiary)
			r.Delete("/diary/{id}", s.handleDeleteDiary)
			r.Post("/diary/{id}/correction", s.handleAttachCorrection)

			r.Get("/exercises", s.handleListExercises)
			r.Get("/exercises/{id}/history", s.handleExerciseHistory)
			r.Post("/exercises/{id}/complete", s.handleCompleteExercise)
			r.Delete("/exercises/{id}", s.handleDeleteExercise)

			r.Post("/review/preview", s.handleReviewPreview)
			r.Post("/review/start", s.handleReviewStart)
			r.Post("/review/sessions/{id}/reveal", s.handleReviewReveal)
			r.Post("/review/sessions/{id}/judge", s.handleReviewJudge)
			r.Get("/review/sessions/{id}/summary", s.handleReviewSummary)
			r.Delete("/review/sessions/{id}", s.handleReviewAbandon)

			r.Get("/stats", s.handleStats)
		})
	})

	return r
}
