package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/bibliosmart/bibliosmart/internal/enrich"
	"github.com/bibliosmart/bibliosmart/internal/library"
)

// EnrichBookTask fills in genre and description for one catalogued book
// using the external suggestion service.
type EnrichBookTask struct {
	BookID string `json:"book_id"`
}

// Config returns the queue configuration for book enrichment tasks,
// taking retry and retention settings from the installed queue policy.
func (t EnrichBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "enrich_book",
		MaxAttempts: queuePolicy.MaxRetries,
		Backoff:     queuePolicy.RetryDelay,
		Timeout:     queuePolicy.TaskTimeout,
		Retention: &backlite.Retention{
			Duration:   queuePolicy.RetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// EnrichBookProcessor creates a processor function for EnrichBookTask.
func EnrichBookProcessor(service *library.Service, enricher *enrich.Enricher) backlite.QueueProcessor[EnrichBookTask] {
	return func(ctx context.Context, task EnrichBookTask) error {
		if enricher == nil {
			return fmt.Errorf("enricher not configured")
		}

		book, err := service.Book(task.BookID)
		if err != nil {
			// The book may have been deleted since the task was queued.
			log.Printf("[TASK] Skipping enrichment for %s: %v", task.BookID, err)
			return nil
		}

		suggestion := enricher.SuggestDetails(ctx, book.Title, book.Author)
		if suggestion.Genre == "" && suggestion.Description == "" {
			log.Printf("[TASK] No suggestion for %q by %q", book.Title, book.Author)
			return nil
		}

		if _, err := service.UpdateBookDetails(book.ID, suggestion.Genre, suggestion.Description); err != nil {
			return fmt.Errorf("update book %s: %w", book.ID, err)
		}

		log.Printf("[TASK] Enriched %q by %q (genre %q)", book.Title, book.Author, suggestion.Genre)
		return nil
	}
}

// NewEnrichBookQueue creates a backlite queue for book enrichment tasks.
func NewEnrichBookQueue(service *library.Service, enricher *enrich.Enricher) backlite.Queue {
	return backlite.NewQueue(EnrichBookProcessor(service, enricher))
}
