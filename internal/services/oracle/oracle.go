package oracle

import "context"

// Oracle answers a member's yes/no question about a lobby's secret concept.
// Implementations should return one of the fixed vocabulary strings, but
// callers normalize the result and tolerate near-misses, so the contract is
// only "a short answer string". Failures map onto model.ErrOracleUnavailable.
type Oracle interface {
	Answer(ctx context.Context, question, secretConcept, conceptContext string) (string, error)
}
