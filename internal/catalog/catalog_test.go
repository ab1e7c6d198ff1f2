package catalog

import (
	"testing"

	"github.com/lisahealth/checkin/internal/models"
)

func TestCount(t *testing.T) {
	if Count() != 15 {
		t.Errorf("expected 15 questions, got %d", Count())
	}
}

func TestFlowOrder(t *testing.T) {
	// Categories must appear in traversal order with no interleaving.
	wantOrder := Categories()
	orderIndex := make(map[models.QuestionCategory]int, len(wantOrder))
	for i, c := range wantOrder {
		orderIndex[c] = i
	}

	last := -1
	for i := 0; i < Count(); i++ {
		idx, ok := orderIndex[CategoryAt(i)]
		if !ok {
			t.Fatalf("question %d has unknown category %q", i, CategoryAt(i))
		}
		if idx < last {
			t.Errorf("question %d (%s) breaks category order", i, At(i).ID)
		}
		last = idx
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[string]bool, Count())
	for i := 0; i < Count(); i++ {
		id := At(i).ID
		if seen[id] {
			t.Errorf("duplicate question ID %q", id)
		}
		seen[id] = true
	}
}

func TestByID(t *testing.T) {
	q, ok := ByID(QuestionStressLevel)
	if !ok {
		t.Fatal("expected stress_01 to be found")
	}
	if q.Kind != models.AnswerKindScale || q.Range == nil {
		t.Errorf("stress_01 must be a ranged scale question, got %+v", q)
	}

	if _, ok := ByID("nope_99"); ok {
		t.Error("unknown ID must not be found")
	}
}

func TestByCategory(t *testing.T) {
	sleep := ByCategory(models.CategorySleep)
	if len(sleep) != 3 {
		t.Fatalf("expected 3 sleep questions, got %d", len(sleep))
	}
	wantIDs := []string{QuestionSleepQuality, QuestionSleepDifficult, QuestionSleepHours}
	for i, id := range wantIDs {
		if sleep[i].ID != id {
			t.Errorf("sleep question %d = %q, want %q", i, sleep[i].ID, id)
		}
	}
}

func TestRangedQuestionsHaveValidRanges(t *testing.T) {
	for i := 0; i < Count(); i++ {
		q := At(i)
		switch q.Kind {
		case models.AnswerKindScale, models.AnswerKindNumeric:
			if q.Range == nil {
				t.Errorf("question %s is %s but has no range", q.ID, q.Kind)
			} else if q.Range.Min >= q.Range.Max {
				t.Errorf("question %s has inverted range %+v", q.ID, *q.Range)
			}
		case models.AnswerKindText, models.AnswerKindYesNo:
			if q.Range != nil {
				t.Errorf("question %s is %s but carries a range", q.ID, q.Kind)
			}
		default:
			t.Errorf("question %s has invalid kind %q", q.ID, q.Kind)
		}
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	At(Count())
}
