// Package engine implements the session state machine for the health check-in.
package engine

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/lisahealth/checkin/internal/catalog"
	"github.com/lisahealth/checkin/internal/models"
	"github.com/lisahealth/checkin/internal/util"
)

// SessionState names the lifecycle states of a check-in session.
type SessionState string

// State constants for the check-in session lifecycle.
const (
	StateNotStarted      SessionState = "NOT_STARTED"
	StateAwaitingConsent SessionState = "AWAITING_CONSENT"
	StateInProgress      SessionState = "IN_PROGRESS"
	StateFinished        SessionState = "FINISHED"
)

// PositionNotStarted is the position index of a session that has not begun.
const PositionNotStarted = -1

// Fixed dialogue text. Only the greeting, hook, and closing interpolate
// per-user values; everything else is constant so that identical input
// sequences produce identical message trajectories.
const (
	greetingTemplate = "Hello %s, my name is Lisa, your personal virtual doctor. " +
		"I have a few questions to ask you today to check on your health. " +
		"Are you ready to start?"

	notStartedMessage = "Please start the session first by saying 'begin' or 'start'."

	consentDeferralMessage = "No problem, take your time. Let me know when you are ready to start."

	consentHookTemplate = "Great. I noticed from your wearable that you only got %s hours of sleep last night, " +
		"and you've taken %s steps today. " +
		"Let's keep that in mind as we go through the assessment.\n\n" +
		"First question: %s"

	closingTemplate = "Thank you for completing the health check-in, %s!\n\n" +
		"I've analyzed your responses along with your wearable data. " +
		"Let me share what I found..."
)

// consentAffirmatives are the keywords accepted as consent to begin,
// matched case-insensitively as substrings.
var consentAffirmatives = []string{"yes", "sure", "ready", "ok", "yeah", "yep", "go ahead"}

// Engine drives one health check-in session for one user. It is
// single-threaded and synchronous: each ProcessResponse call runs to
// completion before the next is accepted, and the surrounding caller is
// responsible for serializing calls. One engine instance serves exactly one
// session.
type Engine struct {
	profile        models.UserProfile
	position       int
	answers        map[string]models.AnswerRecord
	startedAt      time.Time
	consentPending bool
	empathyGiven   bool
	summary        *models.SessionSummary
	rules          []BranchRule
	now            func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithBranchRules replaces the default branching rule set.
func WithBranchRules(rules []BranchRule) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithClock replaces the wall clock, used by tests to pin timestamps. Time is
// read only at session start and completion; engine logic never branches on it.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an engine for the given user profile.
func New(profile models.UserProfile, opts ...Option) (*Engine, error) {
	if err := profile.Validate(); err != nil {
		slog.Error("Engine.New: invalid profile", "error", err)
		return nil, fmt.Errorf("invalid user profile: %w", err)
	}
	e := &Engine{
		profile:        profile,
		position:       PositionNotStarted,
		answers:        make(map[string]models.AnswerRecord),
		consentPending: true,
		rules:          DefaultBranchRules(),
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	slog.Debug("Engine.New: engine created", "displayName", profile.DisplayName, "totalQuestions", catalog.Count())
	return e, nil
}

// State derives the named lifecycle state from the session position.
func (e *Engine) State() SessionState {
	switch {
	case e.position == PositionNotStarted:
		return StateNotStarted
	case e.consentPending:
		return StateAwaitingConsent
	case e.position >= catalog.Count():
		return StateFinished
	default:
		return StateInProgress
	}
}

// StartSession begins a new session: it clears any previous answers, records
// the start time, and returns the greeting asking for consent to begin.
func (e *Engine) StartSession() string {
	e.startedAt = e.now()
	e.position = 0
	e.answers = make(map[string]models.AnswerRecord)
	e.empathyGiven = false
	e.consentPending = true
	e.summary = nil
	slog.Info("Engine.StartSession: session started", "displayName", e.profile.DisplayName)
	return fmt.Sprintf(greetingTemplate, e.profile.DisplayName)
}

// ProcessResponse feeds one user utterance through the state machine and
// returns the next message to speak.
//
// Calls before StartSession return a fixed guidance message. Calls after the
// session has finished replay the cached summary idempotently: the closing
// message and the stored summary are returned unchanged, and nothing is
// recomputed.
func (e *Engine) ProcessResponse(raw string) models.EngineResponse {
	state := e.State()
	slog.Debug("Engine.ProcessResponse: processing utterance", "state", state, "position", e.position)

	switch state {
	case StateNotStarted:
		return models.EngineResponse{Message: notStartedMessage}
	case StateAwaitingConsent:
		return e.handleConsent(raw)
	case StateFinished:
		return e.finishedResponse()
	default:
		return e.handleAnswer(raw)
	}
}

// CurrentState returns a read-only snapshot of the engine position.
func (e *Engine) CurrentState() models.EngineState {
	return models.EngineState{
		Position:       e.position,
		TotalQuestions: catalog.Count(),
		AnsweredCount:  len(e.answers),
		Active:         e.position >= 0,
	}
}

// Reset returns the engine to NotStarted, discarding all answers.
func (e *Engine) Reset() {
	e.position = PositionNotStarted
	e.answers = make(map[string]models.AnswerRecord)
	e.startedAt = time.Time{}
	e.empathyGiven = false
	e.consentPending = true
	e.summary = nil
	slog.Info("Engine.Reset: session state discarded", "displayName", e.profile.DisplayName)
}

// Summary returns the session summary. Once the session has finished the
// cached summary is returned; before that a fresh one is computed from the
// answers collected so far, falling back to documented defaults for anything
// unanswered.
func (e *Engine) Summary() models.SessionSummary {
	if e.summary != nil {
		return *e.summary
	}
	return GenerateSummary(e.answers, e.profile, e.startedAt, e.now())
}

// Transcript returns the answered questions in catalog order.
func (e *Engine) Transcript() []models.AnswerRecord {
	var out []models.AnswerRecord
	for i := 0; i < catalog.Count(); i++ {
		if rec, ok := e.answers[catalog.At(i).ID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Profile returns the user profile the engine was constructed with.
func (e *Engine) Profile() models.UserProfile {
	return e.profile
}

// StartedAt returns the session start time, zero if never started.
func (e *Engine) StartedAt() time.Time {
	return e.startedAt
}

// handleConsent checks the utterance against the affirmative keyword set.
// Affirmative input emits the biometric hook plus the first question;
// anything else defers patiently without changing state.
func (e *Engine) handleConsent(raw string) models.EngineResponse {
	lower := strings.ToLower(raw)
	if !containsAny(lower, consentAffirmatives) {
		slog.Debug("Engine.handleConsent: consent deferred")
		return models.EngineResponse{Message: consentDeferralMessage}
	}

	e.consentPending = false
	first := catalog.At(0)
	hook := fmt.Sprintf(consentHookTemplate,
		formatNumber(e.profile.Biometrics.SleepHoursLastNight),
		util.FormatThousands(e.profile.Biometrics.DailySteps),
		first.Prompt)
	slog.Info("Engine.handleConsent: consent given, assessment begins")
	return models.EngineResponse{
		Message:  hook,
		Hint:     first.Hint,
		Progress: e.progressAt(0),
	}
}

// handleAnswer records the answer for the current question, runs branching,
// and advances the flow.
func (e *Engine) handleAnswer(raw string) models.EngineResponse {
	q := catalog.At(e.position)
	parsed := ParseAnswer(raw, q)
	e.answers[q.ID] = models.AnswerRecord{
		QuestionID: q.ID,
		Value:      parsed,
		RecordedAt: e.now(),
	}
	slog.Debug("Engine.handleAnswer: answer recorded", "questionID", q.ID, "numeric", parsed.Numeric)

	if effect := EvaluateBranches(e.rules, q, parsed, e.position, e.empathyGiven); effect != nil {
		e.position = effect.NewPosition
		e.empathyGiven = effect.EmpathyGiven
		slog.Debug("Engine.handleAnswer: branch applied", "questionID", q.ID, "newPosition", e.position)
		return models.EngineResponse{
			Message:  effect.Message,
			Hint:     catalog.At(e.position).Hint,
			Progress: e.progressAt(e.position),
		}
	}

	e.position++

	if e.position >= catalog.Count() {
		return e.finishSession()
	}

	next := catalog.At(e.position)
	return models.EngineResponse{
		Message:  next.Prompt,
		Hint:     next.Hint,
		Progress: e.progressAt(e.position),
	}
}

// finishSession computes the summary exactly once and emits the closing
// message. The summary is cached so later calls cannot recompute or mutate it.
func (e *Engine) finishSession() models.EngineResponse {
	summary := GenerateSummary(e.answers, e.profile, e.startedAt, e.now())
	e.summary = &summary
	slog.Info("Engine.finishSession: session complete",
		"displayName", e.profile.DisplayName,
		"overallScore", summary.Scores.Overall,
		"criticalFlags", len(summary.RedFlags.Critical))
	return e.finishedResponse()
}

// finishedResponse returns the closing message with the cached summary.
func (e *Engine) finishedResponse() models.EngineResponse {
	summary := *e.summary
	return models.EngineResponse{
		Message:  fmt.Sprintf(closingTemplate, e.profile.DisplayName),
		Finished: true,
		Summary:  &summary,
		Progress: &models.Progress{
			QuestionIndex:  catalog.Count(),
			TotalQuestions: catalog.Count(),
			Category:       models.CategoryComplete,
			Percent:        100,
		},
	}
}

// progressAt builds the progress update for the question at the given index.
func (e *Engine) progressAt(i int) *models.Progress {
	q := catalog.At(i)
	return &models.Progress{
		QuestionIndex:  i,
		TotalQuestions: catalog.Count(),
		Category:       q.Category,
		Percent:        int(math.Round(float64(i) / float64(catalog.Count()) * 100)),
		Kind:           q.Kind,
		Range:          q.Range,
	}
}
