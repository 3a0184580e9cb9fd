// internal/reminder/scheduler.go

package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"applytrack/internal/common/logger"
	"applytrack/internal/common/metrics"
	"applytrack/internal/notify"
)

// firedKeyTTL bounds how long the dedupe marker for a fired reminder is
// retained in redis.
const firedKeyTTL = 24 * time.Hour

// Scheduler arms at most one in-process timer per application. Scheduling a
// new reminder for an application replaces any pending one, so an edited
// interview date never fires twice. A redis SETNX marker additionally
// guards against duplicate delivery across restarts or overlapping
// schedules.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer

	sink   notify.Notifier
	rdb    *redis.Client
	logger logger.Logger
}

// NewScheduler creates a scheduler delivering through sink. rdb may be nil,
// in which case the cross-process dedupe guard is skipped.
func NewScheduler(sink notify.Notifier, rdb *redis.Client, log logger.Logger) *Scheduler {
	return &Scheduler{
		timers: make(map[string]*time.Timer),
		sink:   sink,
		rdb:    rdb,
		logger: log,
	}
}

// Schedule arms a timer for the application that fires at r.FireAt,
// replacing any previously armed reminder for the same application. The
// delay is computed against time.Now at call time.
func (s *Scheduler) Schedule(appID string, r Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.timers[appID]; ok {
		t.Stop()
		delete(s.timers, appID)
		metrics.RemindersCancelled.Inc()
		metrics.RemindersActive.Dec()
	}

	delay := time.Until(r.FireAt)
	if delay < 0 {
		delay = 0
	}

	s.timers[appID] = time.AfterFunc(delay, func() {
		s.fire(appID, r)
	})
	metrics.RemindersScheduled.Inc()
	metrics.RemindersActive.Inc()

	s.logger.Info("Reminder scheduled", map[string]interface{}{
		"application_id": appID,
		"fire_at":        r.FireAt.Format(time.RFC3339),
	})
}

// Cancel stops the pending reminder for the application, if any. Cancelling
// an application with no pending reminder is a no-op.
func (s *Scheduler) Cancel(appID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[appID]
	if !ok {
		return
	}
	t.Stop()
	delete(s.timers, appID)
	metrics.RemindersCancelled.Inc()
	metrics.RemindersActive.Dec()

	s.logger.Info("Reminder cancelled", map[string]interface{}{
		"application_id": appID,
	})
}

// Active reports the number of currently armed reminders.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels all pending reminders. The scheduler is unusable afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
		metrics.RemindersActive.Dec()
	}
}

func (s *Scheduler) fire(appID string, r Reminder) {
	s.mu.Lock()
	delete(s.timers, appID)
	metrics.RemindersActive.Dec()
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if s.rdb != nil {
		key := fmt.Sprintf("reminder:fired:%s:%d", appID, r.FireAt.Unix())
		ok, err := s.rdb.SetNX(ctx, key, "1", firedKeyTTL).Result()
		if err != nil {
			s.logger.WithError(err).Warn("Reminder dedupe check failed, delivering anyway", map[string]interface{}{
				"application_id": appID,
			})
		} else if !ok {
			s.logger.Info("Reminder already delivered, skipping", map[string]interface{}{
				"application_id": appID,
			})
			return
		}
	}

	if err := s.sink.Notify(ctx, Subject, r.Message); err != nil {
		s.logger.WithError(err).Error("Reminder delivery failed", map[string]interface{}{
			"application_id": appID,
		})
		return
	}

	metrics.RemindersFired.Inc()
	s.logger.Info("Reminder delivered", map[string]interface{}{
		"application_id": appID,
	})
}
