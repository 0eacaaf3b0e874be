package model

import "strings"

// AnswerKind is the closed vocabulary of oracle responses
type AnswerKind string

const (
	AnswerYes      AnswerKind = "Yes"
	AnswerNo       AnswerKind = "No"
	AnswerUnknown  AnswerKind = "I don't know"
	AnswerOffTopic AnswerKind = "Off-topic"
	AnswerInvalid  AnswerKind = "Invalid question"
	AnswerCorrect  AnswerKind = "CORRECT"

	// AnswerUnrecognized marks oracle output that matched nothing in the
	// vocabulary; the verbatim text is kept in Answer.Raw.
	AnswerUnrecognized AnswerKind = "unrecognized"
)

// vocabulary lists the recognized responses. Containment is checked in this
// order and the first match wins.
var vocabulary = []AnswerKind{
	AnswerYes,
	AnswerNo,
	AnswerUnknown,
	AnswerOffTopic,
	AnswerInvalid,
	AnswerCorrect,
}

// Answer is an oracle response. Recognized answers carry only their Kind;
// unrecognized answers keep the raw model output.
type Answer struct {
	Kind AnswerKind
	Raw  string
}

// Text returns the user-facing answer string
func (a Answer) Text() string {
	if a.Kind == AnswerUnrecognized {
		return a.Raw
	}
	return string(a.Kind)
}

// Recognized reports whether the answer is from the fixed vocabulary
func (a Answer) Recognized() bool {
	return a.Kind != AnswerUnrecognized
}

// NormalizeAnswer maps raw oracle output onto the vocabulary: the first entry
// whose lowercase form appears in the lowercased raw text wins. Text that
// matches nothing is kept verbatim as an unrecognized answer.
func NormalizeAnswer(raw string) Answer {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	for _, kind := range vocabulary {
		if strings.Contains(lowered, strings.ToLower(string(kind))) {
			return Answer{Kind: kind}
		}
	}
	return Answer{Kind: AnswerUnrecognized, Raw: strings.TrimSpace(raw)}
}
