package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/lisahealth/checkin/internal/catalog"
	"github.com/lisahealth/checkin/internal/models"
)

func testProfile() models.UserProfile {
	return models.UserProfile{
		DisplayName: "Amit",
		Biometrics: models.BiometricSnapshot{
			SleepHoursLastNight: 5.5,
			RestingHeartRate:    72,
			DailySteps:          1200,
		},
		Baseline: models.MedicalBaseline{BaselineStressLevel: 3},
	}
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(testProfile(), WithClock(fixedClock()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return e
}

// neutralAnswers walks all 15 questions without triggering any branch.
func neutralAnswers() []string {
	return []string{
		"2",       // stress level
		"work",    // stress sources
		"7",       // sleep quality
		"no",      // sleep difficulty
		"8",       // sleep hours
		"3",       // exercise days
		"walking", // activity types
		"6",       // energy level
		"2",       // loneliness
		"yes",     // social support
		"5",       // close contacts
		"never",   // alcohol frequency
		"0",       // drinks
		"no",      // smoking
		"0",       // cigarettes
	}
}

func drive(e *Engine, inputs []string) []models.EngineResponse {
	out := make([]models.EngineResponse, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, e.ProcessResponse(in))
	}
	return out
}

func TestNewRejectsInvalidProfile(t *testing.T) {
	_, err := New(models.UserProfile{})
	if err == nil {
		t.Fatal("expected error for empty display name")
	}
}

func TestProcessResponseBeforeStart(t *testing.T) {
	e := newTestEngine(t)
	resp := e.ProcessResponse("hello")
	if resp.Message != notStartedMessage {
		t.Errorf("expected guidance message, got %q", resp.Message)
	}
	if e.State() != StateNotStarted {
		t.Errorf("state changed to %s, want %s", e.State(), StateNotStarted)
	}
}

func TestStartSessionGreeting(t *testing.T) {
	e := newTestEngine(t)
	greeting := e.StartSession()
	if !strings.Contains(greeting, "Amit") {
		t.Errorf("greeting must cite display name, got %q", greeting)
	}
	if e.State() != StateAwaitingConsent {
		t.Errorf("expected %s after start, got %s", StateAwaitingConsent, e.State())
	}
}

func TestConsentDeferral(t *testing.T) {
	e := newTestEngine(t)
	e.StartSession()

	resp := e.ProcessResponse("maybe later")
	if resp.Message != consentDeferralMessage {
		t.Errorf("expected deferral message, got %q", resp.Message)
	}
	if e.State() != StateAwaitingConsent {
		t.Errorf("deferral must not change state, got %s", e.State())
	}
	if state := e.CurrentState(); state.Position != 0 || state.AnsweredCount != 0 {
		t.Errorf("deferral must not move position or record answers: %+v", state)
	}
}

func TestConsentAffirmativeEmitsBiometricHook(t *testing.T) {
	e := newTestEngine(t)
	e.StartSession()

	resp := e.ProcessResponse("sure, go ahead")
	if !strings.Contains(resp.Message, "5.5 hours of sleep") {
		t.Errorf("hook must cite sleep hours, got %q", resp.Message)
	}
	if !strings.Contains(resp.Message, "1,200 steps") {
		t.Errorf("hook must cite formatted step count, got %q", resp.Message)
	}
	if !strings.Contains(resp.Message, catalog.At(0).Prompt) {
		t.Error("hook must include the first question prompt")
	}
	if resp.Hint != catalog.At(0).Hint {
		t.Errorf("expected first question hint, got %q", resp.Hint)
	}
	if resp.Progress == nil || resp.Progress.QuestionIndex != 0 || resp.Progress.Percent != 0 {
		t.Errorf("expected progress at question 0, got %+v", resp.Progress)
	}
	if e.State() != StateInProgress {
		t.Errorf("expected %s after consent, got %s", StateInProgress, e.State())
	}
}

func TestQuestionProgression(t *testing.T) {
	e := newTestEngine(t)
	e.StartSession()
	e.ProcessResponse("yes")

	resp := e.ProcessResponse("2")
	if resp.Message != catalog.At(1).Prompt {
		t.Errorf("expected next question prompt, got %q", resp.Message)
	}
	if resp.Progress == nil {
		t.Fatal("expected progress update")
	}
	if resp.Progress.QuestionIndex != 1 || resp.Progress.TotalQuestions != catalog.Count() {
		t.Errorf("unexpected progress: %+v", resp.Progress)
	}
	if resp.Progress.Percent != 7 { // round(1/15*100)
		t.Errorf("expected 7%% progress, got %d", resp.Progress.Percent)
	}
	if resp.Progress.Category != models.CategoryStress {
		t.Errorf("expected stress category, got %s", resp.Progress.Category)
	}
}

func TestStressBranchingInjectsEmpathy(t *testing.T) {
	e := newTestEngine(t)
	e.StartSession()
	e.ProcessResponse("yes")

	resp := e.ProcessResponse("8")
	if !strings.Contains(resp.Message, "quite high") {
		t.Errorf("expected high-stress empathy variant, got %q", resp.Message)
	}
	if !strings.Contains(resp.Message, catalog.At(1).Prompt) {
		t.Error("empathy message must carry the next question prompt")
	}
	if resp.Progress == nil || resp.Progress.QuestionIndex != 1 {
		t.Errorf("expected position 1 after branch, got %+v", resp.Progress)
	}
	if state := e.CurrentState(); state.AnsweredCount != 1 {
		t.Errorf("stress answer must be recorded, got %+v", state)
	}
}

func TestStressBranchingParityWithNormalAdvance(t *testing.T) {
	// The empathy message prepends text to the next prompt; the following
	// question's answer is still expected next, exactly as without branching.
	branched := newTestEngine(t)
	branched.StartSession()
	branched.ProcessResponse("yes")
	branchedResp := branched.ProcessResponse("8")

	plain := newTestEngine(t)
	plain.StartSession()
	plain.ProcessResponse("yes")
	plainResp := plain.ProcessResponse("2")

	if branchedResp.Progress.QuestionIndex != plainResp.Progress.QuestionIndex {
		t.Errorf("branched position %d, non-branched %d; both flows must expect the same next question",
			branchedResp.Progress.QuestionIndex, plainResp.Progress.QuestionIndex)
	}
	if strings.Contains(plainResp.Message, "quite high") {
		t.Error("non-branching answer must not include empathy text")
	}
}

func TestStressEmpathyGivenOnlyOnce(t *testing.T) {
	e := newTestEngine(t)
	e.StartSession()
	responses := append([]models.EngineResponse{e.ProcessResponse("yes")}, drive(e, []string{
		"8", "work", "7", "no", "8", "3", "walking", "6", "2", "yes", "5", "never", "0", "no", "0",
	})...)

	empathyCount := 0
	for _, resp := range responses {
		if strings.Contains(resp.Message, "quite high") || strings.Contains(resp.Message, "experiencing some stress") {
			empathyCount++
		}
	}
	if empathyCount != 1 {
		t.Errorf("empathy must appear exactly once per session, appeared %d times", empathyCount)
	}
}

func TestFullTraversalCompletes(t *testing.T) {
	e := newTestEngine(t)
	e.StartSession()
	e.ProcessResponse("yes")

	responses := drive(e, neutralAnswers())
	for i, resp := range responses[:len(responses)-1] {
		if resp.Finished {
			t.Fatalf("response %d finished early", i)
		}
	}

	last := responses[len(responses)-1]
	if !last.Finished {
		t.Fatal("final answer must finish the session")
	}
	if !strings.Contains(last.Message, "Amit") {
		t.Errorf("closing message must cite display name, got %q", last.Message)
	}
	if last.Summary == nil {
		t.Fatal("expected summary on completion")
	}
	if last.Summary.Scores.Overall < 1 || last.Summary.Scores.Overall > 10 {
		t.Errorf("overall score out of range: %d", last.Summary.Scores.Overall)
	}
	if last.Progress == nil || last.Progress.Percent != 100 || last.Progress.Category != models.CategoryComplete {
		t.Errorf("expected 100%% complete progress, got %+v", last.Progress)
	}
	if e.State() != StateFinished {
		t.Errorf("expected %s, got %s", StateFinished, e.State())
	}
}

func TestFinishedReplaysCachedSummary(t *testing.T) {
	e := newTestEngine(t)
	e.StartSession()
	e.ProcessResponse("yes")
	responses := drive(e, neutralAnswers())
	final := responses[len(responses)-1]

	replay := e.ProcessResponse("anything else?")
	if !replay.Finished {
		t.Error("replay must still report finished")
	}
	if replay.Message != final.Message {
		t.Error("replay must repeat the closing message")
	}
	if replay.Summary == nil || replay.Summary.NarrativeText != final.Summary.NarrativeText {
		t.Error("replay must return the cached summary unchanged")
	}
	if !replay.Summary.CompletedAt.Equal(final.Summary.CompletedAt) {
		t.Error("replay must not recompute the completion time")
	}
	if state := e.CurrentState(); state.AnsweredCount != catalog.Count() {
		t.Errorf("replay must not record additional answers: %+v", state)
	}
}

func TestDeterministicReplay(t *testing.T) {
	inputs := append([]string{"yes"}, []string{
		"8", "deadlines", "3", "yes", "5", "0", "none", "2", "9", "no", "1", "weekly", "3", "yes", "12",
	}...)

	run := func() []string {
		e := newTestEngine(t)
		var messages []string
		messages = append(messages, e.StartSession())
		for _, resp := range drive(e, inputs) {
			messages = append(messages, resp.Message)
		}
		return messages
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("trajectory lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("message %d differs between identical replays:\n%q\n%q", i, first[i], second[i])
		}
	}
}

func TestReset(t *testing.T) {
	e := newTestEngine(t)
	e.StartSession()
	e.ProcessResponse("yes")
	drive(e, []string{"2", "work", "7"})

	e.Reset()

	state := e.CurrentState()
	if state.Position != PositionNotStarted || state.AnsweredCount != 0 || state.Active {
		t.Errorf("reset must discard all session state: %+v", state)
	}
	if resp := e.ProcessResponse("hello"); resp.Message != notStartedMessage {
		t.Errorf("after reset the engine must ask for a session start, got %q", resp.Message)
	}
}

func TestCurrentStateIntrospection(t *testing.T) {
	e := newTestEngine(t)

	state := e.CurrentState()
	if state.Active {
		t.Error("engine must be inactive before start")
	}
	if state.TotalQuestions != catalog.Count() {
		t.Errorf("expected %d total questions, got %d", catalog.Count(), state.TotalQuestions)
	}

	e.StartSession()
	e.ProcessResponse("yes")
	drive(e, []string{"2", "work"})

	state = e.CurrentState()
	if !state.Active || state.Position != 2 || state.AnsweredCount != 2 {
		t.Errorf("unexpected mid-session state: %+v", state)
	}
}

func TestEndToEndScenario(t *testing.T) {
	// Low-sleep, low-activity profile with a stressed user: the session must
	// surface critical and warning flags and depress the overall score.
	e := newTestEngine(t)
	e.StartSession()
	e.ProcessResponse("yes")

	responses := drive(e, []string{
		"8",             // stress level -> empathy path
		"work pressure", // stress sources
		"3",             // sleep quality
		"yes",           // sleep difficulty
		"5",             // sleep hours
		"0",             // exercise days
		"none",          // activity types
		"2",             // energy level
		"5",             // loneliness
		"no",            // social support
		"2",             // close contacts
		"never",         // alcohol frequency
		"0",             // drinks
		"no",            // smoking
		"0",             // cigarettes
	})

	if !strings.Contains(responses[0].Message, "quite high") {
		t.Error("stress 8 must trigger the high-stress empathy path")
	}

	final := responses[len(responses)-1]
	if !final.Finished || final.Summary == nil {
		t.Fatal("session must finish with a summary")
	}
	summary := final.Summary

	if len(summary.RedFlags.Critical) == 0 {
		t.Error("expected at least one critical flag")
	}
	if summary.Scores.Sleep > 4 {
		t.Errorf("expected depressed sleep score, got %d", summary.Scores.Sleep)
	}
	if summary.Scores.Activity > 4 {
		t.Errorf("expected depressed activity score, got %d", summary.Scores.Activity)
	}

	foundActivityWarning := false
	for _, w := range summary.RedFlags.Warnings {
		if strings.Contains(w, "1,200 steps") {
			foundActivityWarning = true
		}
	}
	if !foundActivityWarning {
		t.Errorf("expected low-activity warning citing step count, got %v", summary.RedFlags.Warnings)
	}

	foundSleepRecommendation := false
	for _, rec := range summary.Recommendations {
		if strings.Contains(rec, "sleep") {
			foundSleepRecommendation = true
		}
	}
	if !foundSleepRecommendation {
		t.Errorf("expected a sleep recommendation, got %v", summary.Recommendations)
	}

	if summary.Scores.Overall > 5 {
		t.Errorf("expected overall score <= 5, got %d", summary.Scores.Overall)
	}
}
