package review

import "github.com/mvales/lingolog/internal/models"

// Summarize computes the session summary from the recorded answers and
// judgments. PerItem preserves the original session order. The display
// layer controls percentage rounding, not this function.
func Summarize(items []models.Exercise, answers map[int64]string, judgments map[int64]bool) models.SessionSummary {
	remembered := 0
	perItem := make([]models.SessionItem, 0, len(items))
	for _, ex := range items {
		judged := judgments[ex.ID]
		if judged {
			remembered++
		}
		perItem = append(perItem, models.SessionItem{
			Exercise:   ex,
			UserAnswer: answers[ex.ID],
			Remembered: judged,
		})
	}

	summary := models.SessionSummary{
		RememberedCount: remembered,
		TotalQuestions:  len(items),
		PerItem:         perItem,
	}
	if summary.TotalQuestions > 0 {
		summary.Percentage = float64(remembered) / float64(summary.TotalQuestions) * 100
	}
	return summary
}
