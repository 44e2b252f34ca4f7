package api

import (
	"net/http"
	"time"

	"github.com/mvales/lingolog/internal/errors"
	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
)

type createDiaryRequest struct {
	EntryDate  string `json:"entry_date" validate:"required,datetime=2006-01-02"`
	NativeText string `json:"native_text" validate:"required"`
	TargetText string `json:"target_text"`
}

type updateDiaryRequest struct {
	NativeText string `json:"native_text" validate:"required"`
	TargetText string `json:"target_text"`
}

type correctionRequest struct {
	CorrectedText string `json:"corrected_text" validate:"required"`
	Expressions   []struct {
		NativeText string `json:"native_text" validate:"required"`
		TargetText string `json:"target_text" validate:"required"`
	} `json:"expressions" validate:"dive"`
}

func (s *Server) handleListDiary(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	filter := models.DiaryFilter{
		LearnerID: learner.ID,
		Limit:     queryInt(r, "limit", 20),
		Offset:    queryInt(r, "offset", 0),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.ParseInLocation("2006-01-02", from, time.Local); err == nil {
			filter.From = t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.ParseInLocation("2006-01-02", to, time.Local); err == nil {
			filter.To = t
		}
	}

	entries, total, err := s.DiaryService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"entries": entries, "total": total})
}

func (s *Server) handleCreateDiary(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	var req createDiaryRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	entryDate, err := time.ParseInLocation("2006-01-02", req.EntryDate, time.Local)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid entry_date"))
		return
	}

	entry, err := s.DiaryService.Create(r.Context(), learner, entryDate, req.NativeText, req.TargetText)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("diary entry created: id=%d", entry.ID)
	respondJSON(w, r, http.StatusCreated, entry)
}

func (s *Server) handleGetDiary(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	entry, err := s.DiaryService.Get(r.Context(), learner, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entry)
}

func (s *Server) handleUpdateDiary(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req updateDiaryRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	entry, err := s.DiaryService.Update(r.Context(), learner, id, req.NativeText, req.TargetText)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, entry)
}

func (s *Server) handleDeleteDiary(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.DiaryService.Delete(r.Context(), learner, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleAttachCorrection(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req correctionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	correction := models.Correction{CorrectedText: req.CorrectedText}
	for _, expr := range req.Expressions {
		correction.Expressions = append(correction.Expressions, models.CorrectionExpression{
			NativeText: expr.NativeText,
			TargetText: expr.TargetText,
		})
	}

	exercises, err := s.DiaryService.AttachCorrection(r.Context(), learner, id, correction)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("correction attached: entry_id=%d, exercises=%d", id, len(exercises))
	respondJSON(w, r, http.StatusCreated, map[string]any{"exercises": exercises})
}
