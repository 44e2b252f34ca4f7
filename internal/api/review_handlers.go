package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
)

type filterParamsRequest struct {
	IsRandom             bool `json:"is_random"`
	NotRememberedCount   int  `json:"not_remembered_count" validate:"min=0"`
	DaysSinceLastAttempt int  `json:"days_since_last_attempt" validate:"min=0"`
	ExcludeRemembered    bool `json:"exclude_remembered"`
	QuestionCount        int  `json:"question_count" validate:"required,min=1,max=20"`
}

func (r filterParamsRequest) toParams() models.FilterParams {
	return models.FilterParams{
		IsRandom:             r.IsRandom,
		NotRememberedCount:   r.NotRememberedCount,
		DaysSinceLastAttempt: r.DaysSinceLastAttempt,
		ExcludeRemembered:    r.ExcludeRemembered,
		QuestionCount:        r.QuestionCount,
	}
}

type revealRequest struct {
	Answer string `json:"answer"`
}

type judgeRequest struct {
	Remembered *bool `json:"remembered" validate:"required"`
}

func (s *Server) handleReviewPreview(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	var req filterParamsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	count, status, err := s.ReviewService.Preview(r.Context(), learner, req.toParams())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"eligible": count, "limit": status})
}

func (s *Server) handleReviewStart(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	var req filterParamsRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ReviewService.StartSession(r.Context(), learner, req.toParams())
	if err != nil {
		handleError(w, r, err)
		return
	}

	if result.SessionID == "" {
		// Nothing matched the filter: empty state, not an error.
		respondJSON(w, r, http.StatusOK, result)
		return
	}
	logger.FromContext(r.Context()).Info("session started: id=%s", result.SessionID)
	respondJSON(w, r, http.StatusCreated, result)
}

func (s *Server) handleReviewReveal(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	var req revealRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.ReviewService.Reveal(r.Context(), learner.ID, sessionID, req.Answer)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleReviewJudge(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	var req judgeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ReviewService.Judge(r.Context(), learner.ID, sessionID, *req.Remembered)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleReviewSummary(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	summary, err := s.ReviewService.Summary(r.Context(), learner.ID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleReviewAbandon(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	if err := s.ReviewService.Abandon(r.Context(), learner.ID, sessionID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
