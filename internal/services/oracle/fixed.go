package oracle

import (
	"context"
	"strings"

	"github.com/questlab/questmaster/internal/model"
)

// Fixed is an offline Oracle for local play and tests: an exact guess of the
// secret wins, everything else gets "I don't know".
type Fixed struct{}

// Ensure Fixed implements Oracle
var _ Oracle = (*Fixed)(nil)

// NewFixed creates a Fixed oracle
func NewFixed() *Fixed {
	return &Fixed{}
}

func (f *Fixed) Answer(ctx context.Context, question, secretConcept, conceptContext string) (string, error) {
	if strings.Contains(strings.ToLower(question), strings.ToLower(secretConcept)) {
		return string(model.AnswerCorrect), nil
	}
	return string(model.AnswerUnknown), nil
}
