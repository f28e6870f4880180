package tasks

import "time"

// Config tunes the enrichment queue. Worker and cleanup settings feed the
// backlite client directly; the retry and retention fields become the
// QueueConfig of the task types, captured when the queues are registered.
type Config struct {
	// Workers is the number of concurrent queue workers.
	Workers int

	// MaxRetries is how many attempts a single-book enrichment gets
	// before it is marked failed.
	MaxRetries int

	// RetryDelay is the backoff between those attempts.
	RetryDelay time.Duration

	// TaskTimeout bounds one single-book enrichment run.
	TaskTimeout time.Duration

	// ReleaseAfter is when a claimed but unfinished task is handed back
	// to the queue.
	ReleaseAfter time.Duration

	// CleanupInterval is how often completed tasks are swept from the
	// queue database.
	CleanupInterval time.Duration

	// RetentionDuration is how long completed tasks stay visible before
	// the sweep removes them.
	RetentionDuration time.Duration
}

// DefaultConfig mirrors the environment defaults in internal/config.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        1 * time.Minute,
		TaskTimeout:       5 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}

// queuePolicy supplies the retry and retention settings the task Config
// methods read. backlite captures a QueueConfig from the task's zero value
// when a queue is built, so NewClient installs the policy before any queue
// is registered; code that builds processors directly gets the defaults.
var queuePolicy = DefaultConfig()
