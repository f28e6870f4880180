package enrich

import (
	"context"
	"log"
	"time"
)

// Provider fetches a suggestion from an external service.
type Provider interface {
	Suggest(ctx context.Context, title, author string) (*Suggestion, error)
}

// Enricher wraps a Provider with the degradation contract the rest of the
// application relies on: a single attempt bounded by a timeout, and a
// neutral fallback instead of an error on any failure path. Callers never
// block indefinitely and never see an enrichment failure.
type Enricher struct {
	provider Provider
	timeout  time.Duration
}

const defaultTimeout = 10 * time.Second

func NewEnricher(provider Provider, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Enricher{
		provider: provider,
		timeout:  timeout,
	}
}

// SuggestDetails returns enrichment for a book draft. On transport, parse,
// or timeout failure it returns the neutral fallback: empty genre and
// description, which keeps the book in the Uncategorized report group
// until an operator fills it in.
func (e *Enricher) SuggestDetails(ctx context.Context, title, author string) Suggestion {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	suggestion, err := e.provider.Suggest(ctx, title, author)
	if err != nil {
		log.Printf("WARNING: enrichment failed for %q by %q: %v", title, author, err)
		return Suggestion{}
	}
	if suggestion == nil {
		return Suggestion{}
	}
	return *suggestion
}
