package generator

import "context"

// Generator produces a reply for one inbound message. Implementations must
// return an error rather than an empty or partial reply; the caller decides
// the fallback policy.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}
