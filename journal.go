package personasdk

import (
	"fmt"
	"log"
	"time"
)

// ──────────────────────────────────────────────
// MemoryJournal — append-only long-term memory log
// ──────────────────────────────────────────────

// FeedbackKind labels a user reaction to an assistant message.
type FeedbackKind string

const (
	FeedbackLike    FeedbackKind = "like"
	FeedbackDislike FeedbackKind = "dislike"
)

// MemoryJournal appends milestone and feedback entries to the persisted
// profile's long-term memory. Every write is a read-modify-write of the
// whole profile document. Writes are best-effort: when no profile exists
// yet the event is dropped silently, and store failures surface as
// PersistenceError for the caller to log and swallow.
type MemoryJournal struct {
	store ProfileStore
	now   func() time.Time
}

// NewMemoryJournal creates a journal over the given store.
func NewMemoryJournal(store ProfileStore) *MemoryJournal {
	return &MemoryJournal{store: store, now: time.Now}
}

// RecordMilestone appends "[<date>] Milestone: <content> (Mood: <mood>)".
func (j *MemoryJournal) RecordMilestone(content, mood string) error {
	date := j.now().Format("2006-01-02")
	return j.append(fmt.Sprintf("[%s] Milestone: %s (Mood: %s)", date, content, mood))
}

// RecordFeedback appends a style reinforcement or correction entry built
// from the reacted message's content.
func (j *MemoryJournal) RecordFeedback(kind FeedbackKind, content string) error {
	var entry string
	switch kind {
	case FeedbackLike:
		entry = fmt.Sprintf("[Style Reinforcement] User confirmed: \"%s\" sounds like them. Keep this style.", content)
	case FeedbackDislike:
		entry = fmt.Sprintf("[Style Correction] User rejected: \"%s\" does not sound like them. Avoid this style.", content)
	default:
		return fmt.Errorf("unknown feedback kind %q", kind)
	}
	return j.append(entry)
}

// append loads the profile, grows Memories.LongTerm by exactly one entry
// and saves the whole document back. A missing profile is a silent no-op.
func (j *MemoryJournal) append(entry string) error {
	profile, err := j.store.Load()
	if err != nil {
		return &PersistenceError{Op: "load", Err: err}
	}
	if profile == nil {
		// No profile yet: nothing to attach the memory to.
		log.Printf("[MemoryJournal] No profile in store, dropping entry")
		return nil
	}

	profile.Memories.LongTerm = append(profile.Memories.LongTerm, entry)
	if err := j.store.Save(profile); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}
