// Package notify is the in-process queue of transient user-facing messages.
package notify

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// DefaultDuration applies when Add is called without an explicit duration.
const DefaultDuration = 5 * time.Second

// Queue holds notifications in insertion order. Entries with a positive
// duration remove themselves when it elapses. Safe for concurrent use.
type Queue struct {
	clock clockwork.Clock

	mu     sync.Mutex
	items  []models.Notification
	timers map[string]clockwork.Timer
	subs   []func(models.Notification)
}

func NewQueue(clock clockwork.Clock) *Queue {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Queue{clock: clock, timers: make(map[string]clockwork.Timer)}
}

// Add appends a notification and returns its id. Without duration the entry
// lives DefaultDuration; an explicit duration <= 0 keeps it until Remove.
func (q *Queue) Add(sev models.Severity, msg string, duration ...time.Duration) string {
	d := DefaultDuration
	if len(duration) > 0 {
		d = duration[0]
	}
	if d < 0 {
		d = 0
	}

	n := models.Notification{
		ID:        uuid.NewString(),
		Severity:  sev,
		Message:   msg,
		Duration:  d,
		CreatedAt: q.clock.Now(),
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	if d > 0 {
		id := n.ID
		q.timers[id] = q.clock.AfterFunc(d, func() { q.Remove(id) })
	}
	subs := append([]func(models.Notification){}, q.subs...)
	q.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
	return n.ID
}

func (q *Queue) Success(msg string, duration ...time.Duration) string {
	return q.Add(models.SeveritySuccess, msg, duration...)
}

func (q *Queue) Error(msg string, duration ...time.Duration) string {
	return q.Add(models.SeverityError, msg, duration...)
}

func (q *Queue) Warning(msg string, duration ...time.Duration) string {
	return q.Add(models.SeverityWarning, msg, duration...)
}

// Remove deletes the notification with id; unknown ids are ignored.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// List returns a snapshot in insertion order.
func (q *Queue) List() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.Notification, len(q.items))
	copy(out, q.items)
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// OnAdd registers fn to be called, outside the queue lock, for every
// notification added afterwards.
func (q *Queue) OnAdd(fn func(models.Notification)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.subs = append(q.subs, fn)
}
