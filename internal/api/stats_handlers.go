package api

import "net/http"

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	stats, err := s.StatsService.GetLearnerStats(r.Context(), learner.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
