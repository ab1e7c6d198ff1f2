// Package models defines answer value structures for the check-in engine.
package models

import (
	"encoding/json"
	"time"
)

// AnswerValue holds a parsed answer, which is either a number or a string.
// Numeric reports which of the two fields carries the value.
type AnswerValue struct {
	Text    string
	Number  float64
	Numeric bool
}

// StringAnswer creates a string-valued answer.
func StringAnswer(s string) AnswerValue {
	return AnswerValue{Text: s}
}

// NumberAnswer creates a number-valued answer.
func NumberAnswer(n float64) AnswerValue {
	return AnswerValue{Number: n, Numeric: true}
}

// AsString returns the string form of the answer regardless of its kind.
func (v AnswerValue) AsString() string {
	if v.Numeric {
		b, _ := json.Marshal(v.Number)
		return string(b)
	}
	return v.Text
}

// MarshalJSON emits a bare JSON number or string, preserving the
// string-or-number union shape on the wire.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.Numeric {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumberAnswer(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = StringAnswer(s)
	return nil
}

// AnswerRecord is a single answered question, created exactly once per
// question and never mutated afterwards.
type AnswerRecord struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
	RecordedAt time.Time   `json:"recorded_at"`
}

// SessionRecord is the persisted transcript of a completed session.
type SessionRecord struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
	Answers     []AnswerRecord  `json:"answers"`
	Summary     *SessionSummary `json:"summary,omitempty"`
}
