package interfaces

import (
	"context"
	"time"
)

// IEffectRepository records side effects that must run at most once, keyed by
// "<orderId>:<effect>".
//
// Claim reports true only to the first caller for a key. Release drops a claim
// whose effect failed so a retry can run it again. Reclaim takes over a claim made
// before staleBefore, left behind by a run that crashed or could not release it.
type IEffectRepository interface {
	Claim(ctx context.Context, key string) (bool, error)
	Reclaim(ctx context.Context, key string, staleBefore time.Time) (bool, error)
	Release(ctx context.Context, key string) error
}

// IEventDeduper remembers provider webhook event ids that were fully processed.
type IEventDeduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}
