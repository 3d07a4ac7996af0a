package workers

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const gcDiscardRatio = 0.5

// ValueLogCollector is the part of *badger.DB the collector needs.
type ValueLogCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// BadgerGCWorker reclaims value log space left by expired and deleted messages.
type BadgerGCWorker struct {
	log        *slog.Logger
	db         ValueLogCollector
	gcInterval time.Duration
}

func NewBadgerGCWorker(log *slog.Logger, db ValueLogCollector, gcInterval time.Duration) *BadgerGCWorker {
	return &BadgerGCWorker{log: log, db: db, gcInterval: gcInterval}
}

func (w *BadgerGCWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.collect(ctx)
		}
	}
}

// collect rewrites value log files until badger reports nothing left to rewrite.
func (w *BadgerGCWorker) collect(ctx context.Context) {
	rewritten := 0
	for ctx.Err() == nil {
		err := w.db.RunValueLogGC(gcDiscardRatio)
		if err == nil {
			rewritten++
			continue
		}
		if !stderrors.Is(err, badger.ErrNoRewrite) && !stderrors.Is(err, badger.ErrRejected) {
			w.log.Warn("Value log GC failed", "error", err)
		}
		break
	}
	if rewritten > 0 {
		w.log.Debug("Value log GC done", "rewritten", rewritten)
	}
}
