// Copyright (c) 2026 Profil CMS Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler publishes scheduled content on time.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"profilcms/internal/model"
	"profilcms/internal/store"
)

// Scheduler checks every minute for content whose scheduled_at has passed
// and publishes it.
type Scheduler struct {
	q    *store.Queries
	cron *cron.Cron
	log  *slog.Logger
}

// New creates a scheduler over the database.
func New(db *sql.DB, log *slog.Logger) *Scheduler {
	return &Scheduler{q: store.New(db), cron: cron.New(), log: log}
}

// eventRetention is how long event log rows are kept.
const eventRetention = 90 * 24 * time.Hour

// Start registers the cron jobs and starts the loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.publishDue(context.Background()); err != nil {
			s.log.Error("publishing scheduled content", "error", err)
		}
	})
	if err != nil {
		return err
	}
	_, err = s.cron.AddFunc("30 3 * * *", func() {
		if err := s.pruneEvents(context.Background()); err != nil {
			s.log.Error("pruning event log", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler started")
	return nil
}

// Stop waits for running jobs and stops the loop.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) publishDue(ctx context.Context) error {
	now := time.Now()
	due, err := s.q.ListScheduledDue(ctx, now)
	if err != nil {
		return err
	}
	for _, item := range due {
		if err := s.q.PublishItem(ctx, item.ID, now); err != nil {
			s.log.Error("publishing scheduled item",
				"section", item.Section, "id", item.ID, "error", err)
			continue
		}
		s.log.Info("published scheduled item",
			"category", model.EventCategoryContent,
			"section", item.Section, "id", item.ID)
	}
	return nil
}

func (s *Scheduler) pruneEvents(ctx context.Context) error {
	n, err := s.q.PruneEvents(ctx, time.Now().Add(-eventRetention))
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("pruned event log", "removed", n)
	}
	return nil
}
