package alerts

import (
	"context"
	"log"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/monteroai/smiledental/internal/directory"
	"github.com/monteroai/smiledental/internal/models"
)

// JobSource is the slice of the backend client the watcher polls.
type JobSource interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
}

// Sender is what the watcher pushes through; *Notifier in production.
type Sender interface {
	SendJob(job models.Job) error
}

// Watcher re-fetches the job list on an interval, runs the directory filter
// over it and pushes postings it has not alerted before.
type Watcher struct {
	api      JobSource
	cache    *Cache
	notifier Sender

	search   string
	category models.JobType
	interval time.Duration
}

func NewWatcher(api JobSource, cache *Cache, notifier Sender, search string, category models.JobType, interval time.Duration) *Watcher {
	return &Watcher{
		api:      api,
		cache:    cache,
		notifier: notifier,
		search:   search,
		category: category,
		interval: interval,
	}
}

// Run polls until the context is cancelled. A failed cycle is logged and
// retried on the next tick; it never stops the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if sent, err := w.RunOnce(ctx); err != nil {
			log.Printf("⚠️ Alert cycle failed: %v", err)
		} else if sent > 0 {
			log.Printf("📨 Pushed %d new job alerts", sent)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce does a single fetch-filter-notify cycle and reports how many
// alerts went out.
func (w *Watcher) RunOnce(ctx context.Context) (int, error) {
	jobs, err := w.api.ListJobs(ctx)
	if err != nil {
		return 0, err
	}

	matched := directory.Filter(jobs, w.search, w.category)

	// a posting can show up under several filters in one batch
	fresh := mapset.NewSet[string]()
	sent := 0
	for _, job := range matched {
		if w.cache.IsSeen(job.ID) || fresh.Contains(job.ID) {
			continue
		}
		if err := w.notifier.SendJob(job); err != nil {
			log.Printf("⚠️ Failed to push alert for %q: %v", job.Title, err)
			continue
		}
		fresh.Add(job.ID)
		sent++
	}

	if fresh.Cardinality() > 0 {
		w.cache.Add(fresh.ToSlice())
	}
	return sent, nil
}
