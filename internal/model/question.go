package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionID uniquely identifies a question within the system
type QuestionID string

// NewQuestionID mints a fresh opaque question identifier
func NewQuestionID() QuestionID {
	return QuestionID(uuid.NewString())
}

// Question is a single yes/no question asked by a lobby member. Answer is nil
// until the oracle has responded, and is set exactly once.
type Question struct {
	ID      QuestionID
	Message string
	Answer  *Answer
	AskedAt time.Time
}

// NewQuestion creates an unanswered question with a freshly generated id
func NewQuestion(message string, now time.Time) *Question {
	return &Question{
		ID:      NewQuestionID(),
		Message: message,
		AskedAt: now,
	}
}

// SetAnswer records the oracle's answer. Only the first call takes effect.
func (q *Question) SetAnswer(a Answer) {
	if q.Answer != nil {
		return
	}
	q.Answer = &a
}

// Answered reports whether the oracle has responded to this question
func (q *Question) Answered() bool {
	return q.Answer != nil
}

// Clone returns a deep copy of the question
func (q *Question) Clone() *Question {
	if q == nil {
		return nil
	}
	cp := *q
	if q.Answer != nil {
		a := *q.Answer
		cp.Answer = &a
	}
	return &cp
}
