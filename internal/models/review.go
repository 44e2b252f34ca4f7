package models

// FilterParams configures one review session's exercise selection.
type FilterParams struct {
	IsRandom             bool `json:"is_random"`
	NotRememberedCount   int  `json:"not_remembered_count"`
	DaysSinceLastAttempt int  `json:"days_since_last_attempt"`
	ExcludeRemembered    bool `json:"exclude_remembered"`
	QuestionCount        int  `json:"question_count"`
}

// LimitStatus is the daily-limit gate's verdict, computed fresh per
// check and never stored.
type LimitStatus struct {
	IsAllowed  bool `json:"is_allowed"`
	IsPremium  bool `json:"is_premium"`
	TodayCount int  `json:"today_count"`
	Limit      int  `json:"limit"`
}

// SessionSummary aggregates a completed session's judgments.
type SessionSummary struct {
	RememberedCount int           `json:"remembered_count"`
	TotalQuestions  int           `json:"total_questions"`
	Percentage      float64       `json:"percentage"`
	PerItem         []SessionItem `json:"per_item"`
}

// SessionItem pairs an exercise with the answer and judgment recorded
// for it, in original session order.
type SessionItem struct {
	Exercise   Exercise `json:"exercise"`
	UserAnswer string   `json:"user_answer"`
	Remembered bool     `json:"remembered"`
}
