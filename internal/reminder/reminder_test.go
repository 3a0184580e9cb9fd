// internal/reminder/reminder_test.go

package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	now := time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)

	t.Run("future interview schedules at midnight", func(t *testing.T) {
		interview := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

		r, ok := Compute("Acme", &interview, now)

		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), r.FireAt)
		assert.Equal(t, "You have an interview with Acme today! Good luck!", r.Message)
	})

	t.Run("no interview date", func(t *testing.T) {
		_, ok := Compute("Acme", nil, now)
		assert.False(t, ok)
	})

	t.Run("interview today does not schedule", func(t *testing.T) {
		interview := time.Date(2026, 2, 20, 15, 0, 0, 0, time.UTC)

		_, ok := Compute("Acme", &interview, now)
		assert.False(t, ok)
	})

	t.Run("past interview does not schedule", func(t *testing.T) {
		interview := time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC)

		_, ok := Compute("Acme", &interview, now)
		assert.False(t, ok)
	})

	t.Run("tomorrow schedules", func(t *testing.T) {
		interview := time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC)

		r, ok := Compute("Initech", &interview, now)

		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC), r.FireAt)
	})
}
