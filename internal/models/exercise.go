package models

import "time"

// Exercise is a single translation prompt generated from a diary
// correction. The native text is the question side, the target text the
// model answer.
type Exercise struct {
	ID             int64     `json:"id"`
	LearnerID      int64     `json:"learner_id"`
	DiaryEntryID   *int64    `json:"diary_entry_id"`
	NativeText     string    `json:"native_text"`
	TargetText     string    `json:"target_text"`
	NativeLanguage Language  `json:"native_language"`
	TargetLanguage Language  `json:"target_language"`
	ScheduledDate  time.Time `json:"scheduled_date"`
	IsCompleted    bool      `json:"is_completed"`
	CreatedAt      time.Time `json:"created_at"`
}

// ExerciseWithAttempts pairs an exercise with its full attempt history,
// as materialized for the review filter engine.
type ExerciseWithAttempts struct {
	Exercise
	Attempts []Attempt `json:"attempts"`
}

// ExerciseFilter narrows exercise listings.
type ExerciseFilter struct {
	LearnerID      int64
	DiaryEntryID   int64
	Completed      *bool
	TargetLanguage Language
	Limit          int
	Offset         int
}
