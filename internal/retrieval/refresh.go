package retrieval

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RefreshCache loads every stored document's chunks and embeddings into the
// cache, then marks the cache initialized. Documents that fail to load are
// skipped with a warning. Returns the number of documents loaded.
func (a *Answerer) RefreshCache(ctx context.Context) (int, error) {
	if a.store == nil {
		a.cache.MarkInitialized()
		return 0, nil
	}

	ids, err := a.store.ListDocumentIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list documents: %w", err)
	}

	loaded := 0
	for _, id := range ids {
		if err := a.warmDocument(ctx, id); err != nil {
			a.logger.Warn("skipping document during cache refresh",
				zap.String("document_id", id), zap.Error(err))
			continue
		}
		loaded++
	}

	a.cache.MarkInitialized()
	a.logger.Info("vector cache refreshed", zap.Int("documents", loaded))
	return loaded, nil
}
