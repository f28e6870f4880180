// Package scheduler runs the periodic collection snapshots. Snapshots are
// plain JSON exports of the three collections, written to a backup
// directory on a cron schedule or on demand.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/robfig/cron/v3"

	"github.com/bibliosmart/bibliosmart/internal/library"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotScheduler periodically exports the collections to disk.
type SnapshotScheduler struct {
	store    *library.Store
	dir      string
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewSnapshotScheduler creates a scheduler writing snapshots of store to
// dir on the given cron schedule (standard five-field format).
func NewSnapshotScheduler(store *library.Store, dir, schedule string) *SnapshotScheduler {
	return &SnapshotScheduler{
		store:    store,
		dir:      dir,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler. Returns an error when the schedule does not
// parse or the backup directory cannot be created.
func (s *SnapshotScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create backup directory %s: %w", s.dir, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runSnapshot()
	})
	if err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Snapshot scheduler: started with schedule %q, writing to %s", s.schedule, s.dir)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running snapshot to
// complete.
func (s *SnapshotScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	log.Printf("Snapshot scheduler: stopped")
}

func (s *SnapshotScheduler) runSnapshot() {
	path, err := WriteSnapshot(s.store, s.dir)
	if err != nil {
		log.Printf("Snapshot scheduler: snapshot failed: %v", err)
		return
	}
	log.Printf("Snapshot scheduler: wrote %s", path)
}

// WriteSnapshot exports the current collections to a timestamped JSON file
// in dir and returns the written path. Also used by the manual backup
// endpoint and the export command.
func WriteSnapshot(store *library.Store, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory %s: %w", dir, err)
	}

	snapshot := store.Snapshot()
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("snapshot-%s.json", snapshot.ExportedAt.Format("20060102-150405")))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return path, nil
}

// NextRun reports when the next scheduled snapshot will fire, or the zero
// time when the scheduler is not running.
func (s *SnapshotScheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}
