// Package engine provides recommendation and summary synthesis.
package engine

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lisahealth/checkin/internal/models"
)

// Recommendation texts. Entries are fixed template strings with no per-user
// interpolation; each is gated by a score threshold.
const (
	recommendSleep = "🌙 Prioritize sleep: Aim for 7-9 hours. Create a bedtime routine and avoid screens 1 hour before bed."

	recommendActivity = "🚶 Increase daily movement: Start with a 15-minute walk, gradually building to 10,000 steps/day."

	recommendStress = "🧘 Stress management: Try deep breathing, meditation, or talk to a mental health professional."

	recommendSocial = "👥 Build social connections: Reach out to a friend, join a group activity, or seek community support."

	recommendLifestyle = "💊 Consider lifestyle changes: Reduce alcohol intake and explore smoking cessation programs if applicable."

	recommendProvider = "⚕️ Consult a healthcare provider: Your assessment suggests professional medical advice would be beneficial."
)

// GenerateRecommendations builds the ordered action list from scores and
// flags. The provider entry closes the list when any critical flag is present
// or the overall score is at most 5.
func GenerateRecommendations(scores models.HealthScores, flags models.RedFlags) []string {
	var recommendations []string

	if scores.Sleep <= 5 {
		recommendations = append(recommendations, recommendSleep)
	}
	if scores.Activity <= 5 {
		recommendations = append(recommendations, recommendActivity)
	}
	if scores.Stress <= 5 {
		recommendations = append(recommendations, recommendStress)
	}
	if scores.Loneliness <= 5 {
		recommendations = append(recommendations, recommendSocial)
	}
	if scores.Lifestyle <= 6 {
		recommendations = append(recommendations, recommendLifestyle)
	}
	if len(flags.Critical) > 0 || scores.Overall <= 5 {
		recommendations = append(recommendations, recommendProvider)
	}

	return recommendations
}

// overallAssessment words the overall score band.
func overallAssessment(score int) string {
	switch {
	case score >= 8:
		return "Excellent Health"
	case score >= 6:
		return "Good Health"
	case score >= 4:
		return "Fair - Needs Improvement"
	default:
		return "Poor - Immediate Action Needed"
	}
}

// narrativeText renders the prose summary: overall band, category breakdown,
// and bullet sections for critical and warning flags. Notices appear only in
// the structured RedFlags, never in the narrative.
func narrativeText(scores models.HealthScores, flags models.RedFlags, displayName string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s, based on your responses and wearable data, here's your health snapshot:\n\n", displayName)
	fmt.Fprintf(&sb, "**Overall Health Score: %d/10** - %s\n\n", scores.Overall, overallAssessment(scores.Overall))

	sb.WriteString("**Category Breakdown:**\n")
	fmt.Fprintf(&sb, "- Stress Management: %d/10\n", scores.Stress)
	fmt.Fprintf(&sb, "- Sleep Quality: %d/10\n", scores.Sleep)
	fmt.Fprintf(&sb, "- Physical Activity: %d/10\n", scores.Activity)
	fmt.Fprintf(&sb, "- Social Connection: %d/10\n", scores.Loneliness)
	fmt.Fprintf(&sb, "- Lifestyle Factors: %d/10\n\n", scores.Lifestyle)

	if len(flags.Critical) > 0 {
		sb.WriteString("⚠️ **Critical Concerns:**\n")
		for _, flag := range flags.Critical {
			fmt.Fprintf(&sb, "- %s\n", flag)
		}
		sb.WriteString("\n")
	}

	if len(flags.Warnings) > 0 {
		sb.WriteString("⚡ **Warnings:**\n")
		for _, flag := range flags.Warnings {
			fmt.Fprintf(&sb, "- %s\n", flag)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// GenerateSummary assembles the immutable session summary: scores, red flags,
// recommendations, narrative, and timing. startedAt may be zero when the
// session never formally started; duration is 0 in that case.
func GenerateSummary(answers map[string]models.AnswerRecord, profile models.UserProfile, startedAt, completedAt time.Time) models.SessionSummary {
	scores := CalculateScores(answers, profile)
	flags := DetectRedFlags(scores, answers, profile)
	recommendations := GenerateRecommendations(scores, flags)

	durationMinutes := 0
	if !startedAt.IsZero() {
		durationMinutes = int(math.Round(completedAt.Sub(startedAt).Minutes()))
	}

	return models.SessionSummary{
		Scores:          scores,
		RedFlags:        flags,
		NarrativeText:   narrativeText(scores, flags, profile.DisplayName),
		Recommendations: recommendations,
		CompletedAt:     completedAt,
		DurationMinutes: durationMinutes,
	}
}
