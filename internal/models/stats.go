package models

// LearnerStats summarizes a learner's review activity for the settings
// screen annotations.
type LearnerStats struct {
	TotalExercises     int     `json:"total_exercises"`
	CompletedExercises int     `json:"completed_exercises"`
	TotalAttempts      int     `json:"total_attempts"`
	RememberedAttempts int     `json:"remembered_attempts"`
	RememberedRate     float64 `json:"remembered_rate"`
	AttemptsToday      int     `json:"attempts_today"`
}
