package api

import (
	"net/http"

	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
)

type createLearnerRequest struct {
	Name           string `json:"name" validate:"required"`
	NativeLanguage string `json:"native_language" validate:"required,len=2"`
	TargetLanguage string `json:"target_language" validate:"required,len=2"`
}

type setPremiumRequest struct {
	Premium *bool `json:"premium" validate:"required"`
}

func (s *Server) handleListLearners(w http.ResponseWriter, r *http.Request) {
	learners, err := s.LearnerService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"learners": learners})
}

func (s *Server) handleCreateLearner(w http.ResponseWriter, r *http.Request) {
	var req createLearnerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.Create(r.Context(), req.Name,
		models.Language(req.NativeLanguage), models.Language(req.TargetLanguage))
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("learner created: id=%d", learner.ID)
	respondJSON(w, r, http.StatusCreated, learner)
}

func (s *Server) handleSelectLearner(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setLearnerCookie(w, learner.ID)
	respondJSON(w, r, http.StatusOK, learner)
}

func (s *Server) handleSetPremium(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req setPremiumRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.LearnerService.SetPremium(r.Context(), id, *req.Premium); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDeleteLearner(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.LearnerService.Delete(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	clearLearnerCookie(w)
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
