package watch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"jobdeck/board-client/internal/jobs"
)

// FeedStore records discovered offers so a watch cycle only reports each
// offer once. Backed by the local watch_feed table:
//
//	CREATE TABLE watch_feed (
//	    job_offer_id BIGINT PRIMARY KEY,
//	    raw_data     JSONB NOT NULL,
//	    seen_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type FeedStore struct {
	pool *pgxpool.Pool
}

// NewFeedStore returns a FeedStore over pool.
func NewFeedStore(pool *pgxpool.Pool) *FeedStore {
	return &FeedStore{pool: pool}
}

// Record inserts offer into the feed unless its id is already present.
// Returns true when the offer was new.
func (f *FeedStore) Record(ctx context.Context, offer jobs.JobOffer) (bool, error) {
	raw, err := json.Marshal(offer)
	if err != nil {
		return false, fmt.Errorf("encode offer: %w", err)
	}

	tag, err := f.pool.Exec(ctx,
		`INSERT INTO watch_feed (job_offer_id, raw_data)
		 SELECT $1, $2::jsonb
		 WHERE NOT EXISTS (
		   SELECT 1 FROM watch_feed WHERE job_offer_id = $1
		 )`,
		offer.ID, string(raw),
	)
	if err != nil {
		return false, fmt.Errorf("insert watch_feed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Seen returns the number of offers recorded so far.
func (f *FeedStore) Seen(ctx context.Context) (int, error) {
	var n int
	if err := f.pool.QueryRow(ctx, `SELECT COUNT(*) FROM watch_feed`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count watch_feed: %w", err)
	}
	return n, nil
}
