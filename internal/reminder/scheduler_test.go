// internal/reminder/scheduler_test.go

package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"applytrack/internal/common/logger"
)

type recordingSink struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingSink) Enabled() bool { return true }

func (s *recordingSink) Notify(_ context.Context, _ string, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSchedulerFires(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, testRedis(t), logger.NewNoOpLogger())
	defer s.Stop()

	r := Reminder{FireAt: time.Now().Add(20 * time.Millisecond), Message: "ping"}
	s.Schedule("app-1", r)

	require.Eventually(t, func() bool {
		return sink.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, "ping", sink.messages[0])
	assert.Equal(t, 0, s.Active())
}

func TestSchedulerReplacesPendingReminder(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, testRedis(t), logger.NewNoOpLogger())
	defer s.Stop()

	s.Schedule("app-1", Reminder{FireAt: time.Now().Add(30 * time.Millisecond), Message: "old"})
	s.Schedule("app-1", Reminder{FireAt: time.Now().Add(30 * time.Millisecond), Message: "new"})

	assert.Equal(t, 1, s.Active())

	require.Eventually(t, func() bool {
		return sink.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"new"}, sink.messages)
}

func TestSchedulerCancel(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, testRedis(t), logger.NewNoOpLogger())
	defer s.Stop()

	s.Schedule("app-1", Reminder{FireAt: time.Now().Add(30 * time.Millisecond), Message: "ping"})
	s.Cancel("app-1")

	assert.Equal(t, 0, s.Active())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, sink.count())

	// Cancelling again is harmless.
	s.Cancel("app-1")
}

func TestSchedulerDedupesAcrossInstances(t *testing.T) {
	sink := &recordingSink{}
	rdb := testRedis(t)

	fireAt := time.Now().Add(20 * time.Millisecond)

	s1 := NewScheduler(sink, rdb, logger.NewNoOpLogger())
	defer s1.Stop()
	s2 := NewScheduler(sink, rdb, logger.NewNoOpLogger())
	defer s2.Stop()

	s1.Schedule("app-1", Reminder{FireAt: fireAt, Message: "ping"})
	s2.Schedule("app-1", Reminder{FireAt: fireAt, Message: "ping"})

	require.Eventually(t, func() bool {
		return sink.count() >= 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, sink.count())
}

func TestSchedulerWithoutRedis(t *testing.T) {
	sink := &recordingSink{}
	s := NewScheduler(sink, nil, logger.NewNoOpLogger())
	defer s.Stop()

	s.Schedule("app-1", Reminder{FireAt: time.Now().Add(10 * time.Millisecond), Message: "ping"})

	require.Eventually(t, func() bool {
		return sink.count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}
