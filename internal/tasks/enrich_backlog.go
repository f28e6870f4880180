package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/bibliosmart/bibliosmart/internal/enrich"
	"github.com/bibliosmart/bibliosmart/internal/library"
)

// EnrichBacklogTask sweeps the catalogue and fills in details for every
// book that has neither genre nor description.
type EnrichBacklogTask struct{}

// Config returns the queue configuration for backlog enrichment sweeps.
// A sweep runs once, never retried: each book inside it is already best
// effort, so rerunning the whole sweep is the recovery path.
func (t EnrichBacklogTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_backlog",
		MaxAttempts: 1,
		Timeout:     30 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   queuePolicy.RetentionDuration,
			OnlyFailed: false,
		},
	}
}

// EnrichBacklogProcessor creates a processor function for EnrichBacklogTask.
// Each book is a single best-effort attempt; a book for which the service
// has no suggestion is left untouched, not retried.
func EnrichBacklogProcessor(service *library.Service, enricher *enrich.Enricher) backlite.QueueProcessor[EnrichBacklogTask] {
	return func(ctx context.Context, task EnrichBacklogTask) error {
		if enricher == nil {
			return fmt.Errorf("enricher not configured")
		}

		missing := service.BooksMissingDetails()
		if len(missing) == 0 {
			log.Printf("[TASK] Catalogue backlog empty, nothing to enrich")
			return nil
		}

		enriched := 0
		for _, book := range missing {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			suggestion := enricher.SuggestDetails(ctx, book.Title, book.Author)
			if suggestion.Genre == "" && suggestion.Description == "" {
				continue
			}
			if _, err := service.UpdateBookDetails(book.ID, suggestion.Genre, suggestion.Description); err != nil {
				log.Printf("[TASK] Failed to update %q: %v", book.Title, err)
				continue
			}
			enriched++
		}

		log.Printf("[TASK] Backlog sweep complete: %d/%d books enriched", enriched, len(missing))
		return nil
	}
}

// NewEnrichBacklogQueue creates a backlite queue for backlog sweeps.
func NewEnrichBacklogQueue(service *library.Service, enricher *enrich.Enricher) backlite.Queue {
	return backlite.NewQueue(EnrichBacklogProcessor(service, enricher))
}
