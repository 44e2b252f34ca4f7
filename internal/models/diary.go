package models

import "time"

// DiaryEntry is one dated diary text in the learner's native and target
// language. CorrectedText stays nil until a correction is attached.
type DiaryEntry struct {
	ID            int64     `json:"id"`
	LearnerID     int64     `json:"learner_id"`
	EntryDate     time.Time `json:"entry_date"`
	NativeText    string    `json:"native_text"`
	TargetText    string    `json:"target_text"`
	CorrectedText *string   `json:"corrected_text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DiaryFilter narrows diary listings.
type DiaryFilter struct {
	LearnerID int64
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}

// Correction is the structured result of an external AI correction run,
// submitted through the ingest endpoint. Each expression becomes one
// translation exercise.
type Correction struct {
	CorrectedText string                 `json:"corrected_text"`
	Expressions   []CorrectionExpression `json:"expressions"`
}

type CorrectionExpression struct {
	NativeText string `json:"native_text"`
	TargetText string `json:"target_text"`
}
