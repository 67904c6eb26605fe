package essay

import (
	"context"
	"time"

	"go.uber.org/zap"

	"essay-feedback/api/internal/essay/types"
	"essay-feedback/api/internal/util"
)

// GrammarCache stores grammar oracle results keyed by text hash and language.
// Find returns found=false on a miss or a stale entry.
type GrammarCache interface {
	Find(ctx context.Context, textHash, language string, maxAge time.Duration) (corrections []types.Correction, found bool, err error)
	Upsert(ctx context.Context, textHash, language string, corrections []types.Correction) error
}

// CachedChecker wraps a GrammarChecker with a GrammarCache. Cache failures are
// logged and otherwise ignored.
type CachedChecker struct {
	Next     GrammarChecker
	Cache    GrammarCache
	Language string
	MaxAge   time.Duration
	Log      *zap.Logger
}

func (c *CachedChecker) Check(ctx context.Context, text string) ([]types.Correction, error) {
	hash := util.SHA256Hex(text)

	cached, found, err := c.Cache.Find(ctx, hash, c.Language, c.MaxAge)
	switch {
	case err != nil:
		c.Log.Warn("grammar cache lookup failed", zap.Error(err))
	case found:
		c.Log.Debug("grammar cache hit", zap.String("hash", hash[:12]), zap.Int("corrections", len(cached)))
		return cached, nil
	}

	out, err := c.Next.Check(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.Cache.Upsert(ctx, hash, c.Language, out); err != nil {
		c.Log.Warn("grammar cache store failed", zap.Error(err))
	}
	return out, nil
}
