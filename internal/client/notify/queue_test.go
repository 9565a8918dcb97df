package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ns []models.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.ID
	}
	return out
}

func TestQueue_AddKeepsOrderAndUniqueIDs(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	a := q.Success("one")
	b := q.Error("two")
	c := q.Warning("three")

	require.Equal(t, []string{a, b, c}, ids(q.List()))
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, b, c)

	list := q.List()
	assert.Equal(t, models.SeveritySuccess, list[0].Severity)
	assert.Equal(t, models.SeverityError, list[1].Severity)
	assert.Equal(t, models.SeverityWarning, list[2].Severity)
	assert.Equal(t, DefaultDuration, list[0].Duration)
}

func TestQueue_ExpiresAfterDuration(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock)

	q.Success("saved", 3*time.Second)
	require.Equal(t, 1, q.Len())

	clock.Advance(3*time.Second - time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, q.Len(), "still present just before expiry")

	clock.Advance(2 * time.Millisecond)
	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestQueue_DefaultDurationExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock)

	q.Warning("hello")
	clock.Advance(DefaultDuration)
	require.Eventually(t, func() bool { return q.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestQueue_StickyWithNonPositiveDuration(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock)

	id := q.Error("sticky", 0)
	clock.Advance(time.Hour)
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, 1, q.Len())
	assert.Zero(t, q.List()[0].Duration)

	q.Remove(id)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_RemoveIsIdempotent(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())
	a := q.Success("a")
	b := q.Success("b")

	q.Remove(a)
	q.Remove(a)
	q.Remove("does-not-exist")

	assert.Equal(t, []string{b}, ids(q.List()))
}

func TestQueue_RemoveBeforeExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	q := NewQueue(clock)

	a := q.Success("a", time.Second)
	b := q.Success("b", 0)
	q.Remove(a)

	clock.Advance(2 * time.Second)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, []string{b}, ids(q.List()))
}

func TestQueue_OnAdd(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())

	var got []string
	q.OnAdd(func(n models.Notification) { got = append(got, n.Message) })

	q.Success("x")
	q.Error("y")
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestQueue_ListIsSnapshot(t *testing.T) {
	q := NewQueue(clockwork.NewFakeClock())
	q.Success("a")

	list := q.List()
	list[0].Message = "changed"
	assert.Equal(t, "a", q.List()[0].Message)
}

func TestQueue_ConcurrentUse(t *testing.T) {
	q := NewQueue(clockwork.NewRealClock())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := q.Success("m", 0)
			_ = q.List()
			q.Remove(id)
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, q.Len())
}
