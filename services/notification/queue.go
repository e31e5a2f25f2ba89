package notification

import (
	"sync"
	"time"

	"airhotel-web/constants"
	"airhotel-web/models"
	"airhotel-web/services/logger"

	"github.com/google/uuid"
)

// Timer is the part of *time.Timer the queue uses
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. Tests replace it with a manual clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type ToastQueueOptions struct {
	Duration  time.Duration
	AfterFunc AfterFunc
	Now       func() time.Time
	Notifier  Service
	Logger    logger.Logger
}

// ToastQueue holds the visible toasts in insertion order. Every toast owns a
// timer and leaves the queue on its own schedule.
type ToastQueue struct {
	duration  time.Duration
	afterFunc AfterFunc
	now       func() time.Time
	notifier  Service
	logger    logger.Logger

	mu     sync.Mutex
	toasts []models.Toast
	timers map[string]Timer
}

func NewToastQueue(opts ToastQueueOptions) *ToastQueue {
	q := &ToastQueue{
		duration:  opts.Duration,
		afterFunc: opts.AfterFunc,
		now:       opts.Now,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
		timers:    make(map[string]Timer),
	}
	if q.duration <= 0 {
		q.duration = constants.ToastDuration
	}
	if q.afterFunc == nil {
		q.afterFunc = realAfterFunc
	}
	if q.now == nil {
		q.now = time.Now
	}
	if q.logger == nil {
		q.logger = logger.Nop{}
	}
	return q
}

func (q *ToastQueue) Success(message string) models.Toast {
	return q.Push(message, constants.ToastSuccess)
}

func (q *ToastQueue) Error(message string) models.Toast {
	return q.Push(message, constants.ToastError)
}

// Push appends a toast and starts its expiry timer
func (q *ToastQueue) Push(message, severity string) models.Toast {
	toast := models.Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: q.now(),
	}

	q.mu.Lock()
	q.toasts = append(q.toasts, toast)
	id := toast.ID
	q.timers[id] = q.afterFunc(q.duration, func() { q.expire(id) })
	q.mu.Unlock()

	q.send(NewMessageBuilder(EventToastAdded).WithToast(toast).Build())
	return toast
}

// Dismiss removes a toast before its timer fires
func (q *ToastQueue) Dismiss(id string) bool {
	if !q.remove(id, true) {
		return false
	}
	q.send(NewMessageBuilder(EventToastRemoved).WithID(id).WithReason("dismissed").Build())
	return true
}

func (q *ToastQueue) expire(id string) {
	if q.remove(id, false) {
		q.send(NewMessageBuilder(EventToastRemoved).WithID(id).WithReason("expired").Build())
	}
}

func (q *ToastQueue) remove(id string, stopTimer bool) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, toast := range q.toasts {
		if toast.ID != id {
			continue
		}
		q.toasts = append(q.toasts[:i:i], q.toasts[i+1:]...)
		if timer, ok := q.timers[id]; ok {
			if stopTimer {
				timer.Stop()
			}
			delete(q.timers, id)
		}
		return true
	}
	return false
}

// List returns a copy of the visible toasts, oldest first
func (q *ToastQueue) List() []models.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]models.Toast, len(q.toasts))
	copy(out, q.toasts)
	return out
}

// Clear drops every toast and stops their timers
func (q *ToastQueue) Clear() {
	q.mu.Lock()
	ids := make([]string, 0, len(q.toasts))
	for _, toast := range q.toasts {
		ids = append(ids, toast.ID)
	}
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.toasts = nil
	q.mu.Unlock()

	for _, id := range ids {
		q.send(NewMessageBuilder(EventToastRemoved).WithID(id).WithReason("cleared").Build())
	}
}

// Close stops all pending timers without emitting events
func (q *ToastQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
}

func (q *ToastQueue) send(message string) {
	if q.notifier == nil {
		return
	}
	if err := q.notifier.SendMessage(message); err != nil {
		q.logger.Debug("broadcast toast event: %v", err)
	}
}
