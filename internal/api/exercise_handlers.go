package api

import (
	"net/http"

	"github.com/mvales/lingolog/internal/models"
)

type completeExerciseRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	filter := models.ExerciseFilter{
		LearnerID:    learner.ID,
		DiaryEntryID: int64(queryInt(r, "diary_entry_id", 0)),
		Limit:        queryInt(r, "limit", 20),
		Offset:       queryInt(r, "offset", 0),
	}
	if v := r.URL.Query().Get("completed"); v == "true" || v == "false" {
		completed := v == "true"
		filter.Completed = &completed
	}
	if v := r.URL.Query().Get("target_language"); v != "" {
		filter.TargetLanguage = models.Language(v)
	}

	exercises, total, err := s.ExerciseService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"exercises": exercises, "total": total})
}

func (s *Server) handleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	attempts, err := s.ExerciseService.History(r.Context(), learner, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"attempts": attempts})
}

func (s *Server) handleCompleteExercise(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req completeExerciseRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ExerciseService.SetCompleted(r.Context(), learner, id, *req.Completed); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ExerciseService.Delete(r.Context(), learner, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}
