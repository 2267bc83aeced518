// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/store"
)

// defaultProbeInterval applies when no interval is configured.
const defaultProbeInterval = 15 * time.Second

// StorageProbe pings the database periodically and forwards the result to
// its reporters. Only status changes are logged.
type StorageProbe struct {
	db        store.Database
	interval  time.Duration
	timeout   time.Duration
	reporters []StatusReporter

	logger *logger.Logger
}

func NewStorageProbe(db store.Database, interval time.Duration, logger *logger.Logger, reporters ...StatusReporter) *StorageProbe {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	return &StorageProbe{
		db:        db,
		interval:  interval,
		timeout:   interval / 2,
		reporters: reporters,
		logger:    logger,
	}
}

// Run probes once immediately and then on every tick until ctx is done.
func (p *StorageProbe) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	var last *bool
	for {
		up := p.probe(ctx)
		if last == nil || *last != up {
			event := p.logger.Info()
			if !up {
				event = p.logger.Warn()
			}
			event.Str("driver", p.db.Driver()).Bool("up", up).Msg("storage status changed")
		}
		last = &up

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *StorageProbe) probe(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.db.Ping(pingCtx)
	if err != nil && ctx.Err() == nil {
		p.logger.Debug().Err(err).Msg("storage ping failed")
	}

	up := err == nil
	for _, r := range p.reporters {
		r.ReportStorageStatus(up)
	}
	return up
}
