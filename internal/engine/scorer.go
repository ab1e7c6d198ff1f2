// Package engine provides health score computation from answers and biometrics.
package engine

import (
	"math"
	"strings"

	"github.com/lisahealth/checkin/internal/catalog"
	"github.com/lisahealth/checkin/internal/models"
)

// Scoring weights for the overall composite.
const (
	weightStress     = 0.25
	weightSleep      = 0.25
	weightActivity   = 0.20
	weightLoneliness = 0.15
	weightLifestyle  = 0.15
)

// Defaults applied when a question was never answered. The scorer must always
// produce a complete score set, even from a partial or skipped session.
const (
	defaultStressLevel  = 5
	defaultSleepQuality = 5
	defaultExerciseDays = 0
	defaultEnergyLevel  = 5
	defaultLoneliness   = 5
)

// CalculateScores derives the five category scores and the overall composite
// from collected answers and wearable biometrics. It is a pure function:
// scores are recomputed fresh on every call, never cached incrementally.
//
// Category scores are rounded to integers for display, but the overall
// composite is computed from the unrounded intermediates and rounded once.
func CalculateScores(answers map[string]models.AnswerRecord, profile models.UserProfile) models.HealthScores {
	stressLevel := answerNumber(answers, catalog.QuestionStressLevel, defaultStressLevel)
	sleepQuality := answerNumber(answers, catalog.QuestionSleepQuality, defaultSleepQuality)
	sleepHours := answerNumber(answers, catalog.QuestionSleepHours, profile.Biometrics.SleepHoursLastNight)
	exerciseDays := answerNumber(answers, catalog.QuestionExerciseDays, defaultExerciseDays)
	energyLevel := answerNumber(answers, catalog.QuestionEnergyLevel, defaultEnergyLevel)
	lonelinessLevel := answerNumber(answers, catalog.QuestionLoneliness, defaultLoneliness)
	socialSupport := answerString(answers, catalog.QuestionSocialSupport, "no")
	alcoholFreq := answerString(answers, catalog.QuestionAlcoholFreq, "never")
	smoking := answerString(answers, catalog.QuestionSmoking, "no")

	stressScore := 11 - stressLevel

	sleepScore := clampFloat(sleepQuality*0.6+sleepHoursBand(sleepHours)*0.4, 1, 10)

	// The exercise-days term is deliberately unscaled: days/7*7 in the source
	// model is an identity, so days 0-7 contribute one point each.
	activityScore := clampFloat(
		exerciseDays+energyLevel*0.3+stepsBand(profile.Biometrics.DailySteps)*0.3, 1, 10)

	lonelinessScore := 11 - lonelinessLevel
	if strings.Contains(strings.ToLower(socialSupport), "yes") {
		lonelinessScore += 2
	}
	lonelinessScore = math.Min(10, lonelinessScore)

	lifestyleScore := lifestyle(answers, alcoholFreq, smoking)

	overall := math.Round(stressScore*weightStress +
		sleepScore*weightSleep +
		activityScore*weightActivity +
		lonelinessScore*weightLoneliness +
		lifestyleScore*weightLifestyle)

	return models.HealthScores{
		Stress:     roundScore(stressScore),
		Sleep:      roundScore(sleepScore),
		Activity:   roundScore(activityScore),
		Loneliness: roundScore(lonelinessScore),
		Lifestyle:  roundScore(lifestyleScore),
		Overall:    int(overall),
	}
}

// sleepHoursBand maps nightly sleep hours to a band score. 7-9 hours is the
// recommended range; both chronic undersleeping and oversleeping score lower.
func sleepHoursBand(hours float64) float64 {
	switch {
	case hours >= 7 && hours <= 9:
		return 10
	case hours >= 6 && hours < 7:
		return 7
	case hours >= 5 && hours < 6:
		return 5
	case hours < 5:
		return 2
	case hours > 9 && hours <= 10:
		return 7
	default:
		return 4
	}
}

// stepsBand maps a daily step count to a band score.
func stepsBand(dailySteps int) float64 {
	switch {
	case dailySteps >= 10000:
		return 10
	case dailySteps >= 7500:
		return 8
	case dailySteps >= 5000:
		return 6
	case dailySteps >= 2500:
		return 4
	default:
		return 2
	}
}

// lifestyle scores alcohol and smoking habits, starting from 10 and applying
// penalties, floored at 1.
func lifestyle(answers map[string]models.AnswerRecord, alcoholFreq, smoking string) float64 {
	score := 10.0

	alc := strings.ToLower(alcoholFreq)
	switch {
	case strings.Contains(alc, "daily") || strings.Contains(alc, "every day"):
		score -= 4
	case strings.Contains(alc, "week"):
		score -= 2
	case strings.Contains(alc, "month"):
		score -= 1
	}

	if strings.Contains(strings.ToLower(smoking), "yes") {
		cigarettes := answerNumber(answers, catalog.QuestionCigarettes, 0)
		switch {
		case cigarettes > 20:
			score -= 6
		case cigarettes > 10:
			score -= 4
		case cigarettes > 0:
			score -= 3
		}
	}

	return math.Max(1, score)
}

// answerNumber returns the numeric answer for a question, or the default when
// the question was not answered or the answer is not numeric.
func answerNumber(answers map[string]models.AnswerRecord, questionID string, def float64) float64 {
	rec, ok := answers[questionID]
	if !ok || !rec.Value.Numeric {
		return def
	}
	return rec.Value.Number
}

// answerString returns the string form of an answer, or the default when the
// question was not answered. Numeric answers are rendered as strings.
func answerString(answers map[string]models.AnswerRecord, questionID string, def string) string {
	rec, ok := answers[questionID]
	if !ok {
		return def
	}
	return rec.Value.AsString()
}

func roundScore(v float64) int {
	return int(math.Round(v))
}
