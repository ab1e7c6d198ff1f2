// Package models defines the core data structures for the check-in engine.
//
// It includes types for user profiles, questions, scores, red flags, and
// session summaries, which are shared across modules.
package models

import (
	"errors"
	"time"
)

// QuestionCategory groups questions into assessment areas.
type QuestionCategory string

const (
	// CategoryStress covers perceived stress questions.
	CategoryStress QuestionCategory = "stress"
	// CategorySleep covers sleep quality and duration questions.
	CategorySleep QuestionCategory = "sleep"
	// CategoryActivity covers physical activity and energy questions.
	CategoryActivity QuestionCategory = "activity"
	// CategoryLoneliness covers social connection questions.
	CategoryLoneliness QuestionCategory = "loneliness"
	// CategoryAlcohol covers alcohol consumption questions.
	CategoryAlcohol QuestionCategory = "alcohol"
	// CategorySmoking covers tobacco use questions.
	CategorySmoking QuestionCategory = "smoking"
	// CategoryComplete marks the terminal progress update after the last question.
	CategoryComplete QuestionCategory = "complete"
)

// AnswerKind defines the expected shape of a question's answer.
type AnswerKind string

const (
	// AnswerKindScale expects a 1-10 self-rating.
	AnswerKindScale AnswerKind = "scale"
	// AnswerKindYesNo expects a yes or no answer.
	AnswerKindYesNo AnswerKind = "yes-no"
	// AnswerKindNumeric expects a number within an arbitrary range.
	AnswerKindNumeric AnswerKind = "numeric"
	// AnswerKindText expects free text.
	AnswerKindText AnswerKind = "text"
)

// IsValidAnswerKind checks if the given answer kind is supported.
func IsValidAnswerKind(k AnswerKind) bool {
	switch k {
	case AnswerKindScale, AnswerKindYesNo, AnswerKindNumeric, AnswerKindText:
		return true
	default:
		return false
	}
}

// Validation constants for user profiles.
const (
	// MinBaselineStress is the lowest valid baseline stress level.
	MinBaselineStress = 1
	// MaxBaselineStress is the highest valid baseline stress level.
	MaxBaselineStress = 10
)

// Error variables for better error handling and testability.
var (
	ErrEmptyDisplayName         = errors.New("display name cannot be empty")
	ErrBaselineStressOutOfRange = errors.New("baseline stress level must be between 1 and 10")
)

// BiometricSnapshot holds the latest wearable readings for a user.
// Supplied once at session start and never mutated by the engine.
type BiometricSnapshot struct {
	SleepHoursLastNight float64 `json:"sleep_hours_last_night"`
	RestingHeartRate    int     `json:"resting_heart_rate"`
	DailySteps          int     `json:"daily_steps"`
}

// MedicalBaseline holds the user's medical and psychological baseline.
type MedicalBaseline struct {
	BaselineStressLevel int      `json:"baseline_stress_level"`
	Conditions          []string `json:"conditions,omitempty"`
	Medications         []string `json:"medications,omitempty"`
}

// UserProfile combines identity, wearable data, and medical baseline.
// Immutable for the lifetime of a session.
type UserProfile struct {
	DisplayName string            `json:"display_name"`
	Biometrics  BiometricSnapshot `json:"biometrics"`
	Baseline    MedicalBaseline   `json:"baseline"`
}

// Validate performs validation on a UserProfile structure.
// A zero baseline stress level is treated as unset.
func (p *UserProfile) Validate() error {
	if p.DisplayName == "" {
		return ErrEmptyDisplayName
	}
	if p.Baseline.BaselineStressLevel != 0 &&
		(p.Baseline.BaselineStressLevel < MinBaselineStress || p.Baseline.BaselineStressLevel > MaxBaselineStress) {
		return ErrBaselineStressOutOfRange
	}
	return nil
}

// Range constrains numeric and scale answers.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Question is a single entry in the assessment flow.
type Question struct {
	ID       string           `json:"id"`
	Category QuestionCategory `json:"category"`
	Prompt   string           `json:"prompt"`
	Kind     AnswerKind       `json:"kind"`
	Range    *Range           `json:"range,omitempty"`
	Hint     string           `json:"hint,omitempty"`
}

// HealthScores holds the derived category scores and the overall composite.
// Each category score is in [1,10]; Overall is a rounded weighted composite.
type HealthScores struct {
	Stress     int `json:"stress_score"`
	Sleep      int `json:"sleep_score"`
	Activity   int `json:"activity_score"`
	Loneliness int `json:"loneliness_score"`
	Lifestyle  int `json:"lifestyle_score"`
	Overall    int `json:"overall_score"`
}

// RedFlags categorizes health concerns by severity.
type RedFlags struct {
	Critical []string `json:"critical"`
	Warnings []string `json:"warnings"`
	Notices  []string `json:"notices"`
}

// Progress describes the position within the assessment after a response.
type Progress struct {
	QuestionIndex  int              `json:"question_index"`
	TotalQuestions int              `json:"total_questions"`
	Category       QuestionCategory `json:"category"`
	Percent        int              `json:"percent"`
	Kind           AnswerKind       `json:"kind,omitempty"`
	Range          *Range           `json:"range,omitempty"`
}

// SessionSummary is the immutable result of a completed session.
type SessionSummary struct {
	Scores          HealthScores `json:"scores"`
	RedFlags        RedFlags     `json:"red_flags"`
	NarrativeText   string       `json:"narrative_text"`
	Recommendations []string     `json:"recommendations"`
	CompletedAt     time.Time    `json:"completed_at"`
	DurationMinutes int          `json:"duration_minutes"`
}

// EngineResponse is returned by the engine for every processed utterance.
type EngineResponse struct {
	Message  string          `json:"message"`
	Finished bool            `json:"finished"`
	Hint     string          `json:"hint,omitempty"`
	Progress *Progress       `json:"progress,omitempty"`
	Summary  *SessionSummary `json:"summary,omitempty"`
}

// EngineState is a read-only snapshot of the engine position.
type EngineState struct {
	Position       int  `json:"position"`
	TotalQuestions int  `json:"total_questions"`
	AnsweredCount  int  `json:"answered_count"`
	Active         bool `json:"active"`
}
