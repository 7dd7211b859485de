package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookfinder/internal/tasks"
)

// Enqueuer adds tasks to the background queue.
type Enqueuer interface {
	Enqueue(tasks ...backlite.Task) ([]string, error)
}

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSchedule reports whether schedule is a five-field cron expression
// or a descriptor such as @daily or @every 6h.
func ValidateSchedule(schedule string) error {
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}

// RefreshScheduler periodically enqueues a refresh of every favourite.
type RefreshScheduler struct {
	queue    Enqueuer
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	parsed    cron.Schedule
	mu        sync.RWMutex
	isRunning bool
}

// NewRefreshScheduler creates a scheduler. An empty schedule leaves it disabled.
func NewRefreshScheduler(queue Enqueuer, schedule string) *RefreshScheduler {
	return &RefreshScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if a schedule is configured. It stops on its own
// when ctx is cancelled.
func (s *RefreshScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		log.Printf("[SCHEDULER] Favourite refresh: disabled")
		return nil
	}
	parsed, err := parser.Parse(s.schedule)
	if err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	s.entryID = s.cron.Schedule(parsed, cron.FuncJob(func() {
		if err := s.RunNow(); err != nil {
			log.Printf("[SCHEDULER] %v", err)
		}
	}))
	s.parsed = parsed

	s.cron.Start()
	s.isRunning = true

	log.Printf("[SCHEDULER] Favourite refresh: started with schedule '%s'. Next run: %v",
		s.schedule, parsed.Next(time.Now()))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job and stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("[SCHEDULER] Favourite refresh: stopped")
}

// RunNow enqueues a refresh of every favourite immediately.
func (s *RefreshScheduler) RunNow() error {
	ids, err := s.queue.Enqueue(tasks.RefreshAllFavoritesTask{})
	if err != nil {
		return fmt.Errorf("failed to enqueue favourite refresh: %w", err)
	}
	log.Printf("[SCHEDULER] Favourite refresh enqueued: %v", ids)
	return nil
}

func (s *RefreshScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next refresh will be enqueued, or nil when stopped.
func (s *RefreshScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.parsed.Next(time.Now())
	return &next
}
