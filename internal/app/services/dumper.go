package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ilya-burinskiy/webapis/internal/app/logger"
)

// Dumper persists storage state
type Dumper interface {
	Dump() error
}

// StorageDumper
type StorageDumper struct {
	dumper   Dumper
	interval time.Duration
}

const defaultDumpInterval = 5 * time.Second

// NewStorageDumper
func NewStorageDumper(dumper Dumper, interval time.Duration) StorageDumper {
	if interval <= 0 {
		interval = defaultDumpInterval
	}
	return StorageDumper{
		dumper:   dumper,
		interval: interval,
	}
}

// Start dumping every interval until ctx is done. The returned channel is closed
// after the final dump.
func (d StorageDumper) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				d.dump()
			case <-ctx.Done():
				d.dump()
				return
			}
		}
	}()

	return done
}

func (d StorageDumper) dump() {
	if err := d.dumper.Dump(); err != nil {
		logger.Log.Error("failed to dump storage", zap.Error(err))
	}
}
