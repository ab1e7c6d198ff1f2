// Package catalog defines the fixed question flow for the health assessment.
//
// The catalog order is semantically meaningful: it encodes the traversal path
// stress -> sleep -> activity -> loneliness -> alcohol -> smoking. Branching
// rules in the engine are the only mechanism that can skip within this order,
// and they only ever skip forward.
package catalog

import "github.com/lisahealth/checkin/internal/models"

// Question ID constants referenced by the scorer and branching rules.
const (
	QuestionStressLevel    = "stress_01"
	QuestionStressSources  = "stress_02"
	QuestionSleepQuality   = "sleep_01"
	QuestionSleepDifficult = "sleep_02"
	QuestionSleepHours     = "sleep_03"
	QuestionExerciseDays   = "activity_01"
	QuestionActivityTypes  = "activity_02"
	QuestionEnergyLevel    = "activity_03"
	QuestionLoneliness     = "loneliness_01"
	QuestionSocialSupport  = "loneliness_02"
	QuestionCloseContacts  = "loneliness_03"
	QuestionAlcoholFreq    = "alcohol_01"
	QuestionAlcoholAmount  = "alcohol_02"
	QuestionSmoking        = "smoking_01"
	QuestionCigarettes     = "smoking_02"
)

var questions = []models.Question{
	{
		ID:       QuestionStressLevel,
		Category: models.CategoryStress,
		Prompt:   "On a scale of 1-10, how stressed have you been feeling lately?",
		Kind:     models.AnswerKindScale,
		Range:    &models.Range{Min: 1, Max: 10},
		Hint:     "1 = Not stressed at all, 10 = Extremely stressed",
	},
	{
		ID:       QuestionStressSources,
		Category: models.CategoryStress,
		Prompt:   "What are your main sources of stress right now?",
		Kind:     models.AnswerKindText,
		Hint:     "E.g., work, relationships, health, finances",
	},
	{
		ID:       QuestionSleepQuality,
		Category: models.CategorySleep,
		Prompt:   "How would you rate your sleep quality over the past week?",
		Kind:     models.AnswerKindScale,
		Range:    &models.Range{Min: 1, Max: 10},
		Hint:     "1 = Very poor, 10 = Excellent",
	},
	{
		ID:       QuestionSleepDifficult,
		Category: models.CategorySleep,
		Prompt:   "Do you have difficulty falling asleep or staying asleep?",
		Kind:     models.AnswerKindYesNo,
	},
	{
		ID:       QuestionSleepHours,
		Category: models.CategorySleep,
		Prompt:   "On average, how many hours of sleep do you typically get per night?",
		Kind:     models.AnswerKindNumeric,
		Range:    &models.Range{Min: 0, Max: 24},
		Hint:     "Enter a number (e.g., 7.5)",
	},
	{
		ID:       QuestionExerciseDays,
		Category: models.CategoryActivity,
		Prompt:   "How many days per week do you engage in physical exercise?",
		Kind:     models.AnswerKindNumeric,
		Range:    &models.Range{Min: 0, Max: 7},
		Hint:     "Exercise includes walking, running, gym, sports, etc.",
	},
	{
		ID:       QuestionActivityTypes,
		Category: models.CategoryActivity,
		Prompt:   "What type of physical activities do you enjoy or regularly do?",
		Kind:     models.AnswerKindText,
		Hint:     "E.g., walking, running, yoga, swimming, cycling",
	},
	{
		ID:       QuestionEnergyLevel,
		Category: models.CategoryActivity,
		Prompt:   "On a scale of 1-10, how would you rate your current energy levels?",
		Kind:     models.AnswerKindScale,
		Range:    &models.Range{Min: 1, Max: 10},
		Hint:     "1 = Constantly exhausted, 10 = Full of energy",
	},
	{
		ID:       QuestionLoneliness,
		Category: models.CategoryLoneliness,
		Prompt:   "How often do you feel lonely or socially isolated?",
		Kind:     models.AnswerKindScale,
		Range:    &models.Range{Min: 1, Max: 10},
		Hint:     "1 = Never lonely, 10 = Constantly lonely",
	},
	{
		ID:       QuestionSocialSupport,
		Category: models.CategoryLoneliness,
		Prompt:   "Do you have people you can talk to about personal matters?",
		Kind:     models.AnswerKindYesNo,
	},
	{
		ID:       QuestionCloseContacts,
		Category: models.CategoryLoneliness,
		Prompt:   "How many close friends or family members do you regularly connect with?",
		Kind:     models.AnswerKindNumeric,
		Range:    &models.Range{Min: 0, Max: 100},
		Hint:     "Regular connection = at least weekly",
	},
	{
		ID:       QuestionAlcoholFreq,
		Category: models.CategoryAlcohol,
		Prompt:   "How often do you consume alcohol?",
		Kind:     models.AnswerKindText,
		Hint:     "E.g., daily, weekly, monthly, rarely, never",
	},
	{
		ID:       QuestionAlcoholAmount,
		Category: models.CategoryAlcohol,
		Prompt:   "On days when you drink, how many standard drinks do you typically have?",
		Kind:     models.AnswerKindNumeric,
		Range:    &models.Range{Min: 0, Max: 50},
		Hint:     "Standard drink = 1 beer, 1 glass of wine, or 1 shot",
	},
	{
		ID:       QuestionSmoking,
		Category: models.CategorySmoking,
		Prompt:   "Do you currently smoke cigarettes or use tobacco products?",
		Kind:     models.AnswerKindYesNo,
	},
	{
		ID:       QuestionCigarettes,
		Category: models.CategorySmoking,
		Prompt:   "If yes, how many cigarettes or tobacco products per day?",
		Kind:     models.AnswerKindNumeric,
		Range:    &models.Range{Min: 0, Max: 100},
		Hint:     "Enter 0 if you do not smoke",
	},
}

// Count returns the total number of questions in the flow.
func Count() int {
	return len(questions)
}

// At returns the question at the given position. The index must be in
// [0, Count()); anything else is a programmer error.
func At(i int) models.Question {
	return questions[i]
}

// CategoryAt returns the category of the question at the given position.
func CategoryAt(i int) models.QuestionCategory {
	return questions[i].Category
}

// ByID looks up a question by its unique identifier.
func ByID(id string) (models.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}

// ByCategory returns all questions in the given category, in flow order.
func ByCategory(c models.QuestionCategory) []models.Question {
	var out []models.Question
	for _, q := range questions {
		if q.Category == c {
			out = append(out, q)
		}
	}
	return out
}

// Categories lists the assessment categories in traversal order.
func Categories() []models.QuestionCategory {
	return []models.QuestionCategory{
		models.CategoryStress,
		models.CategorySleep,
		models.CategoryActivity,
		models.CategoryLoneliness,
		models.CategoryAlcohol,
		models.CategorySmoking,
	}
}
