package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// UserID uniquely identifies a lobby member across the system
type UserID string

// NewUserID mints a fresh opaque user identifier
func NewUserID() UserID {
	return UserID(uuid.NewString())
}

// User is a lobby member: the host or one of the participants. A user owns
// every question they have asked, keyed by question id.
type User struct {
	ID        UserID
	Name      string
	Questions map[QuestionID]*Question
	JoinedAt  time.Time
}

// NewUser creates a user with a freshly generated id
func NewUser(name string, now time.Time) *User {
	return &User{
		ID:        NewUserID(),
		Name:      name,
		Questions: make(map[QuestionID]*Question),
		JoinedAt:  now,
	}
}

// AddQuestion attaches a question to this user's history
func (u *User) AddQuestion(q *Question) {
	if u.Questions == nil {
		u.Questions = make(map[QuestionID]*Question)
	}
	u.Questions[q.ID] = q
}

// QuestionList returns the user's questions ordered by creation time.
// Map iteration order carries no meaning, so callers always go through this.
func (u *User) QuestionList() []*Question {
	questions := make([]*Question, 0, len(u.Questions))
	for _, q := range u.Questions {
		questions = append(questions, q)
	}
	sort.Slice(questions, func(i, j int) bool {
		if questions[i].AskedAt.Equal(questions[j].AskedAt) {
			return questions[i].ID < questions[j].ID
		}
		return questions[i].AskedAt.Before(questions[j].AskedAt)
	})
	return questions
}

// Clone returns a deep copy of the user, including their question history
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Questions = make(map[QuestionID]*Question, len(u.Questions))
	for id, q := range u.Questions {
		cp.Questions[id] = q.Clone()
	}
	return &cp
}

// QuestionStats summarizes a user's history for ranking: total questions
// asked, how many were answered "Yes", and whether any answer was CORRECT.
func (u *User) QuestionStats() (total int, yes int, correct bool) {
	for _, q := range u.Questions {
		total++
		if q.Answer == nil {
			continue
		}
		switch q.Answer.Kind {
		case AnswerYes:
			yes++
		case AnswerCorrect:
			correct = true
		}
	}
	return total, yes, correct
}
