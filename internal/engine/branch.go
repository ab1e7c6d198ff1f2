// Package engine provides the registrable branching rules for the check-in flow.
package engine

import (
	"fmt"
	"strconv"

	"github.com/lisahealth/checkin/internal/catalog"
	"github.com/lisahealth/checkin/internal/models"
)

// Stress thresholds for the empathy branch.
const (
	// StressEmpathyThreshold is the stress answer above which empathy is offered.
	StressEmpathyThreshold = 4
	// StressHighThreshold is the stress answer at or above which the high-stress
	// empathy variant is used instead of the moderate one.
	StressHighThreshold = 7
)

// BranchEffect describes the outcome of a matched branch rule: a composed
// message that replaces the normal next-question prompt, the position the
// session moves to, and whether the empathy lead-in has now been given.
type BranchEffect struct {
	Message      string
	NewPosition  int
	EmpathyGiven bool
}

// BranchFunc evaluates an answer against a question and reports whether the
// rule fires. It must be pure: same inputs, same effect.
type BranchFunc func(q models.Question, answer models.AnswerValue, position int, empathyGiven bool) (*BranchEffect, bool)

// BranchRule pairs a question ID with a predicate-and-effect function.
// Rules only run for the question they are keyed on.
type BranchRule struct {
	QuestionID string
	Evaluate   BranchFunc
}

// DefaultBranchRules returns the built-in rule set. Currently a single rule:
// an empathetic lead-in after a high stress rating. Additional branches
// (e.g., loneliness empathy) can be added here without touching the state
// machine.
func DefaultBranchRules() []BranchRule {
	return []BranchRule{
		{QuestionID: catalog.QuestionStressLevel, Evaluate: stressEmpathyBranch},
	}
}

// EvaluateBranches runs the rules registered for the given question in order
// and returns the first effect that fires, or nil.
func EvaluateBranches(rules []BranchRule, q models.Question, answer models.AnswerValue, position int, empathyGiven bool) *BranchEffect {
	for _, rule := range rules {
		if rule.QuestionID != q.ID {
			continue
		}
		if effect, ok := rule.Evaluate(q, answer, position, empathyGiven); ok {
			return effect
		}
	}
	return nil
}

// stressEmpathyBranch injects an empathetic lead-in when the stress rating
// exceeds the threshold and empathy has not yet been given this session. The
// lead-in is prepended to the next question's prompt; it does not consume a
// question slot of its own.
func stressEmpathyBranch(q models.Question, answer models.AnswerValue, position int, empathyGiven bool) (*BranchEffect, bool) {
	if !answer.Numeric || answer.Number <= StressEmpathyThreshold || empathyGiven {
		return nil, false
	}

	level := formatNumber(answer.Number)
	var empathy string
	if answer.Number >= StressHighThreshold {
		empathy = fmt.Sprintf("I hear you - a %s/10 stress level is quite high. "+
			"It's really important that you're taking time for this check-in. "+
			"Let me ask you a follow-up question to better understand what's going on.\n\n", level)
	} else {
		empathy = fmt.Sprintf("A %s/10 suggests you're experiencing some stress. "+
			"That's completely normal, and I'm here to help. "+
			"Let me ask a follow-up.\n\n", level)
	}

	next := position + 1
	return &BranchEffect{
		Message:      empathy + catalog.At(next).Prompt,
		NewPosition:  next,
		EmpathyGiven: true,
	}, true
}

// formatNumber renders a float the way it was spoken: no trailing zeros,
// no exponent.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
