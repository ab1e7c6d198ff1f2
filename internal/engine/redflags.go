// Package engine provides red-flag detection from scores and answers.
package engine

import (
	"fmt"
	"strings"

	"github.com/lisahealth/checkin/internal/catalog"
	"github.com/lisahealth/checkin/internal/models"
	"github.com/lisahealth/checkin/internal/util"
)

// DetectRedFlags classifies scores and answers into critical, warning, and
// notice tiers. Multiple flags may co-occur; no flag suppresses another, and
// order within each tier follows the fixed evaluation order below.
func DetectRedFlags(scores models.HealthScores, answers map[string]models.AnswerRecord, profile models.UserProfile) models.RedFlags {
	flags := models.RedFlags{
		Critical: []string{},
		Warnings: []string{},
		Notices:  []string{},
	}

	if scores.Sleep <= 3 {
		flags.Critical = append(flags.Critical,
			fmt.Sprintf("Severely inadequate sleep detected - only %s hours last night",
				formatNumber(profile.Biometrics.SleepHoursLastNight)))
	}

	if scores.Stress <= 3 {
		flags.Critical = append(flags.Critical, "Dangerously high stress levels (7+/10)")
	}

	smoking := answerString(answers, catalog.QuestionSmoking, "no")
	if strings.Contains(strings.ToLower(smoking), "yes") {
		cigarettes := answerNumber(answers, catalog.QuestionCigarettes, 0)
		if cigarettes > 10 {
			flags.Critical = append(flags.Critical,
				fmt.Sprintf("Heavy smoking detected (%s cigarettes/day)", formatNumber(cigarettes)))
		}
	}

	if scores.Sleep > 3 && scores.Sleep <= 5 {
		flags.Warnings = append(flags.Warnings, "Poor sleep quality affecting overall health")
	}

	if scores.Activity <= 4 {
		flags.Warnings = append(flags.Warnings,
			fmt.Sprintf("Very low physical activity - only %s steps today",
				util.FormatThousands(profile.Biometrics.DailySteps)))
	}

	if scores.Stress > 3 && scores.Stress <= 5 {
		flags.Warnings = append(flags.Warnings, "Elevated stress levels need attention")
	}

	if scores.Loneliness <= 4 {
		flags.Warnings = append(flags.Warnings, "Social isolation concerns detected")
	}

	if scores.Activity > 4 && scores.Activity <= 6 {
		flags.Notices = append(flags.Notices, "Physical activity below recommended levels")
	}

	if scores.Sleep > 5 && scores.Sleep <= 7 {
		flags.Notices = append(flags.Notices, "Sleep quality could be improved")
	}

	if scores.Lifestyle <= 7 {
		flags.Notices = append(flags.Notices, "Lifestyle factors (alcohol/smoking) present health risks")
	}

	return flags
}
