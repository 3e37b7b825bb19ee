package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Maintainable is the slice of the store the scheduler needs: housekeeping
// plus a record count for the periodic log line.
type Maintainable interface {
	Maintain(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

// Scheduler periodically runs store maintenance.
type Scheduler struct {
	scheduler *gocron.Scheduler
	store     Maintainable
	interval  time.Duration
}

// New creates a new Scheduler.
func New(store Maintainable, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		store:     store,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.store.Maintain(ctx); err != nil {
			log.Printf("scheduler: store maintenance failed: %v", err)
			return
		}

		if n, err := s.store.Count(ctx); err == nil {
			log.Printf("scheduler: store maintenance completed, %d records", n)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
