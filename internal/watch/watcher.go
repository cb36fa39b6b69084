package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"jobdeck/board-client/internal/jobs"
)

// maxPages bounds one watch cycle; a saved search matching more than this
// many pages only reports the newest slice each round.
const maxPages = 3

// Saved is one saved search: the filter to re-run plus exclusion terms.
// The filter's Page field is ignored — the watcher pages by itself.
type Saved struct {
	Name     string
	Filter   jobs.Filter
	Excluded []string
}

// Watcher re-runs saved searches on a cron schedule and records new offers.
type Watcher struct {
	cron    *cron.Cron
	queries *jobs.Service
	feed    *FeedStore
	rdb     *redis.Client // nil disables event publishing
	saved   []Saved
	spec    string // cron spec, e.g. "@every 30m"
}

// New creates a Watcher that fires every intervalMinutes minutes.
func New(queries *jobs.Service, feed *FeedStore, rdb *redis.Client, saved []Saved, intervalMinutes int) *Watcher {
	return &Watcher{
		cron:    cron.New(),
		queries: queries,
		feed:    feed,
		rdb:     rdb,
		saved:   saved,
		spec:    fmt.Sprintf("@every %dm", intervalMinutes),
	}
}

// Start registers the job and starts the scheduler. Also runs one cycle
// immediately so the feed is populated without waiting for the first tick.
func (w *Watcher) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.spec, func() {
		w.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	w.cron.Start()
	slog.Info("watcher started", "spec", w.spec, "searches", len(w.saved))

	go w.runCycle(ctx)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (w *Watcher) Stop() {
	w.cron.Stop()
	slog.Info("watcher stopped")
}

// runCycle runs every saved search once.
func (w *Watcher) runCycle(ctx context.Context) {
	for _, s := range w.saved {
		fresh, dropped, err := w.RunOnce(ctx, s)
		if err != nil {
			slog.Error("watch cycle failed", "search", s.Name, "err", err)
			continue
		}
		slog.Info("watch cycle done", "search", s.Name, "new", fresh, "excluded", dropped)
	}
}

// RunOnce executes a single saved search: pages through results (bounded by
// maxPages), drops excluded offers and records the rest, publishing an
// event for every offer not seen before.
func (w *Watcher) RunOnce(ctx context.Context, s Saved) (fresh, dropped int, err error) {
	filter := s.Filter
	for pageNo := 1; pageNo <= maxPages; pageNo++ {
		page, err := w.queries.Search(ctx, filter.WithPage(pageNo))
		if err != nil {
			return fresh, dropped, fmt.Errorf("page %d: %w", pageNo, err)
		}

		for _, offer := range page.Items {
			if ContainsExcluded(offer, s.Excluded) {
				dropped++
				continue
			}
			isNew, err := w.feed.Record(ctx, offer)
			if err != nil {
				slog.Error("feed record failed", "jobOfferId", offer.ID, "err", err)
				continue
			}
			if isNew {
				fresh++
				w.publishNewOffer(ctx, s.Name, offer)
			}
		}

		if pageNo >= page.TotalPages {
			break
		}
	}
	return fresh, dropped, nil
}

// publishNewOffer emits EVENT_NEW_OFFER on Redis (non-fatal).
func (w *Watcher) publishNewOffer(ctx context.Context, search string, offer jobs.JobOffer) {
	if w.rdb == nil {
		return
	}
	event, _ := json.Marshal(map[string]any{
		"type":       "EVENT_NEW_OFFER",
		"search":     search,
		"jobOfferId": offer.ID,
		"title":      offer.Title,
	})
	if err := w.rdb.Publish(ctx, "EVENT_NEW_OFFER", event).Err(); err != nil {
		slog.Warn("publish EVENT_NEW_OFFER failed", "err", err)
	}
}
