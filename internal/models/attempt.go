package models

import "time"

// Attempt is one recorded answer event against an exercise. Remembered
// is nil between reveal and judgment; once set it is never mutated.
type Attempt struct {
	ID          int64     `json:"id"`
	ExerciseID  int64     `json:"exercise_id"`
	UserAnswer  string    `json:"user_answer"`
	Remembered  *bool     `json:"remembered"`
	AttemptedAt time.Time `json:"attempted_at"`
}
