package personasdk

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go.uber.org/atomic"
)

// ──────────────────────────────────────────────
// DialogueEngine — persona-constrained conversation
// ──────────────────────────────────────────────

// ChatRole is a transcript message role.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// ChatMessage is one transcript entry. Feedback is the only mutable field;
// it may be rewritten any number of times, last write wins.
type ChatMessage struct {
	ID        string       `json:"id"`
	Role      ChatRole     `json:"role"`
	Content   string       `json:"content"`
	Timestamp time.Time    `json:"timestamp"`
	Feedback  FeedbackKind `json:"feedback,omitempty"`
}

// PromptMessage is the wire shape sent to the generation service.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator is the external text-generation boundary. Implementations must
// map transport and API failures to GenerationError and must never return a
// raw transport error as reply text.
type Generator interface {
	Generate(ctx context.Context, messages []PromptMessage) (string, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, messages []PromptMessage) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, messages []PromptMessage) (string, error) {
	return f(ctx, messages)
}

// greetingFormat interpolates the persona name and its first core identity.
const greetingFormat = "已接入边缘节点。我是 %s。我的核心逻辑已根据你的 %s 进行初始化。我们聊聊？"

// DialogueEngine maintains one conversation transcript over a profile.
// One engine serves one session; a single in-flight flag enforces at most
// one outstanding generation at a time (no other locking is needed).
type DialogueEngine struct {
	profile   *PersonalityProfile
	generator Generator
	store     ProfileStore  // optional; nil freezes the profile snapshot
	journal   *AsyncJournal // optional; nil disables feedback memory

	messages   []ChatMessage
	generating atomic.Bool
	seq        atomic.Int64
	now        func() time.Time
}

// NewDialogueEngine creates an engine seeded with the persona's greeting.
// When a store is given, each Send reloads the persisted profile so that
// journal entries written since the last turn reach the next prompt; a nil
// store keeps the initial snapshot for the whole session.
func NewDialogueEngine(profile *PersonalityProfile, generator Generator, store ProfileStore, journal *AsyncJournal) *DialogueEngine {
	e := &DialogueEngine{
		profile:   profile,
		generator: generator,
		store:     store,
		journal:   journal,
		now:       time.Now,
	}
	e.messages = append(e.messages, ChatMessage{
		ID:        "init",
		Role:      RoleAssistant,
		Content:   fmt.Sprintf(greetingFormat, profile.Name, profile.FirstIdentity("特质")),
		Timestamp: e.now(),
	})
	return e
}

// Messages returns a copy of the transcript in creation order.
func (e *DialogueEngine) Messages() []ChatMessage {
	out := make([]ChatMessage, len(e.messages))
	copy(out, e.messages)
	return out
}

// Generating reports whether a generation request is in flight.
func (e *DialogueEngine) Generating() bool {
	return e.generating.Load()
}

// Send appends the user's message, asks the generation service for the
// persona's reply and appends it. A blank userText or an already in-flight
// generation makes Send a no-op returning (nil, nil).
//
// On a generation failure the transcript keeps the user's message and
// nothing else: no partial assistant turn is ever stored, and the returned
// error is a GenerationError whose surface form is GenerationFallbackMessage.
func (e *DialogueEngine) Send(ctx context.Context, userText string) (*ChatMessage, error) {
	if strings.TrimSpace(userText) == "" {
		return nil, nil
	}
	if !e.generating.CompareAndSwap(false, true) {
		return nil, nil
	}
	defer e.generating.Store(false)

	e.appendMessage(RoleUser, userText)

	// The system prompt is rebuilt per send from the freshest profile so
	// memory appended since the last turn is always reflected.
	prompt := []PromptMessage{{Role: string(RoleSystem), Content: BuildSystemPrompt(e.currentProfile())}}
	for _, m := range e.messages {
		prompt = append(prompt, PromptMessage{Role: string(m.Role), Content: m.Content})
	}

	text, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		if _, ok := err.(*GenerationError); !ok {
			err = &GenerationError{Err: err}
		}
		return nil, err
	}

	reply := e.appendMessage(RoleAssistant, text)
	return reply, nil
}

// Feedback marks the message with the given id (last write wins) and fires
// a journal event built from that message's content. The journal write is
// irreversible and independent of the transcript: it happens even if the
// same message is re-marked later. Returns false when no message matches.
func (e *DialogueEngine) Feedback(messageID string, kind FeedbackKind) bool {
	for i := range e.messages {
		if e.messages[i].ID != messageID {
			continue
		}
		e.messages[i].Feedback = kind
		if e.journal != nil {
			e.journal.SubmitFeedback(kind, e.messages[i].Content)
		}
		return true
	}
	return false
}

// currentProfile reloads the persisted profile, keeping the held snapshot
// as the fallback when the store is absent, errors, or holds nothing.
func (e *DialogueEngine) currentProfile() *PersonalityProfile {
	if e.store == nil {
		return e.profile
	}
	stored, err := e.store.Load()
	if err != nil {
		log.Printf("[DialogueEngine] Profile reload failed, using snapshot | err=%v", err)
		return e.profile
	}
	if stored == nil {
		return e.profile
	}
	e.profile = stored
	return stored
}

func (e *DialogueEngine) appendMessage(role ChatRole, content string) *ChatMessage {
	msg := ChatMessage{
		ID:        fmt.Sprintf("m_%d", e.seq.Inc()),
		Role:      role,
		Content:   content,
		Timestamp: e.now(),
	}
	e.messages = append(e.messages, msg)
	return &msg
}
