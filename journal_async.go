package personasdk

import (
	"context"
	"log"
	"sync"
)

// ──────────────────────────────────────────────
// AsyncJournal — fire-and-forget journal writes
// ──────────────────────────────────────────────

// AsyncJournalConfig controls the background journal writer.
type AsyncJournalConfig struct {
	QueueSize int // buffered channel capacity, default 100
}

// DefaultAsyncJournalConfig returns production defaults.
func DefaultAsyncJournalConfig() AsyncJournalConfig {
	return AsyncJournalConfig{QueueSize: 100}
}

type journalEvent struct {
	milestone bool
	content   string
	mood      string
	feedback  FeedbackKind
}

// AsyncJournal decouples journal writes from the conversation hot path.
// Events are applied by a single background worker, which serializes
// concurrent feedback clicks against each other; generation calls are never
// blocked. Failures are logged and dropped, matching the best-effort
// contract of the journal.
type AsyncJournal struct {
	journal *MemoryJournal
	queue   chan journalEvent
	wg      sync.WaitGroup
	cancel  context.CancelFunc

	mu      sync.RWMutex
	stopped bool
}

// NewAsyncJournal creates and starts a background journal writer.
// Call Stop() to drain the queue and shut the worker down.
func NewAsyncJournal(journal *MemoryJournal, config ...AsyncJournalConfig) *AsyncJournal {
	cfg := DefaultAsyncJournalConfig()
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 100
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &AsyncJournal{
		journal: journal,
		queue:   make(chan journalEvent, cfg.QueueSize),
		cancel:  cancel,
	}
	a.wg.Add(1)
	go a.worker(ctx)
	return a
}

// SubmitMilestone enqueues a milestone event. Non-blocking; drops when the
// queue is full. Returns true if enqueued.
func (a *AsyncJournal) SubmitMilestone(content, mood string) bool {
	return a.submit(journalEvent{milestone: true, content: content, mood: mood})
}

// SubmitFeedback enqueues a feedback event. Non-blocking; drops when the
// queue is full. Returns true if enqueued.
func (a *AsyncJournal) SubmitFeedback(kind FeedbackKind, content string) bool {
	return a.submit(journalEvent{feedback: kind, content: content})
}

// submit holds the read lock across the send so Stop cannot close the
// queue underneath it. The send never blocks, so neither does the lock.
func (a *AsyncJournal) submit(ev journalEvent) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.stopped {
		log.Printf("[AsyncJournal] Journal stopped, dropping event")
		return false
	}
	select {
	case a.queue <- ev:
		return true
	default:
		log.Printf("[AsyncJournal] Queue full, dropping journal event")
		return false
	}
}

// Pending returns the number of events waiting in the queue.
func (a *AsyncJournal) Pending() int {
	return len(a.queue)
}

// Stop signals the worker to drain remaining events and exit. Blocks until
// done. Safe to call more than once; submits arriving after Stop are
// dropped instead of panicking on the closed queue.
func (a *AsyncJournal) Stop() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		a.wg.Wait()
		return
	}
	a.stopped = true
	a.cancel()
	close(a.queue)
	a.mu.Unlock()
	a.wg.Wait()
}

func (a *AsyncJournal) worker(ctx context.Context) {
	defer a.wg.Done()
	for {
		select {
		case ev, ok := <-a.queue:
			if !ok {
				return
			}
			a.apply(ev)
		case <-ctx.Done():
			// Drain remaining
			for ev := range a.queue {
				a.apply(ev)
			}
			return
		}
	}
}

func (a *AsyncJournal) apply(ev journalEvent) {
	var err error
	if ev.milestone {
		err = a.journal.RecordMilestone(ev.content, ev.mood)
	} else {
		err = a.journal.RecordFeedback(ev.feedback, ev.content)
	}
	if err != nil {
		log.Printf("[AsyncJournal] Journal write failed: %v", err)
	}
}
