package models

import "time"

// Language is an IETF-style language tag for diary entries and exercises.
type Language string

const (
	LanguageEnglish    Language = "en"
	LanguageJapanese   Language = "ja"
	LanguageKorean     Language = "ko"
	LanguageChinese    Language = "zh"
	LanguageSpanish    Language = "es"
	LanguageFrench     Language = "fr"
	LanguageGerman     Language = "de"
	LanguagePortuguese Language = "pt"
)

// Tier is the entitlement level gating the daily review limit and
// diary-date restrictions.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

type Learner struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	NativeLanguage Language  `json:"native_language"`
	TargetLanguage Language  `json:"target_language"`
	IsPremium      bool      `json:"is_premium"`
	CreatedAt      time.Time `json:"created_at"`
}

// Tier maps the stored premium flag onto an explicit tier value so the
// limit gates take tier as an input instead of reading ambient state.
func (l *Learner) Tier() Tier {
	if l.IsPremium {
		return TierPremium
	}
	return TierFree
}
