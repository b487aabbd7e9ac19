package personasdk

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// ══════════════════════════════════════════════
// DialogueEngine tests
// ══════════════════════════════════════════════

func testProfile() *PersonalityProfile {
	return Synthesize(fullAnswers(), DefaultCards())
}

func echoGenerator(reply string) Generator {
	return GeneratorFunc(func(ctx context.Context, messages []PromptMessage) (string, error) {
		return reply, nil
	})
}

func TestDialogueEngine_SeedsGreeting(t *testing.T) {
	e := NewDialogueEngine(testProfile(), echoGenerator("ok"), nil, nil)

	msgs := e.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected only the greeting, got %d messages", len(msgs))
	}
	greeting := msgs[0]
	if greeting.ID != "init" {
		t.Fatalf("greeting id should be init, got %q", greeting.ID)
	}
	if greeting.Role != RoleAssistant {
		t.Fatalf("greeting should be an assistant message, got %q", greeting.Role)
	}
	if !strings.Contains(greeting.Content, "镜像") {
		t.Fatalf("greeting should name the persona: %q", greeting.Content)
	}
	if !strings.Contains(greeting.Content, "创业者") {
		t.Fatalf("greeting should carry the first identity: %q", greeting.Content)
	}
}

func TestDialogueEngine_GreetingFallbackIdentity(t *testing.T) {
	profile := Synthesize(nil, DefaultCards())
	e := NewDialogueEngine(profile, echoGenerator("ok"), nil, nil)
	if !strings.Contains(e.Messages()[0].Content, "特质") {
		t.Fatalf("empty identity list should fall back: %q", e.Messages()[0].Content)
	}
}

func TestDialogueEngine_SendAppendsBothTurns(t *testing.T) {
	e := NewDialogueEngine(testProfile(), echoGenerator("讲真，今天不错。"), nil, nil)

	reply, err := e.Send(context.Background(), "今天过得怎么样？")
	if err != nil {
		t.Fatal(err)
	}
	if reply == nil || reply.Content != "讲真，今天不错。" {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if reply.Role != RoleAssistant {
		t.Fatalf("reply role should be assistant, got %q", reply.Role)
	}

	msgs := e.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected greeting+user+assistant, got %d", len(msgs))
	}
	if msgs[1].Role != RoleUser || msgs[1].Content != "今天过得怎么样？" {
		t.Fatalf("unexpected user turn %+v", msgs[1])
	}
	if msgs[1].ID == msgs[2].ID {
		t.Fatal("message ids must be unique")
	}
}

func TestDialogueEngine_BlankSendIsNoOp(t *testing.T) {
	called := false
	gen := GeneratorFunc(func(ctx context.Context, messages []PromptMessage) (string, error) {
		called = true
		return "ok", nil
	})
	e := NewDialogueEngine(testProfile(), gen, nil, nil)

	reply, err := e.Send(context.Background(), "   \n\t")
	if reply != nil || err != nil {
		t.Fatalf("blank send should be (nil, nil), got (%v, %v)", reply, err)
	}
	if called {
		t.Fatal("generator must not run for a blank send")
	}
	if len(e.Messages()) != 1 {
		t.Fatal("transcript must be unchanged")
	}
}

func TestDialogueEngine_PromptShape(t *testing.T) {
	var captured []PromptMessage
	gen := GeneratorFunc(func(ctx context.Context, messages []PromptMessage) (string, error) {
		captured = messages
		return "ok", nil
	})
	e := NewDialogueEngine(testProfile(), gen, nil, nil)

	if _, err := e.Send(context.Background(), "你好"); err != nil {
		t.Fatal(err)
	}

	// system + greeting + user turn
	if len(captured) != 3 {
		t.Fatalf("expected 3 prompt messages, got %d", len(captured))
	}
	if captured[0].Role != "system" {
		t.Fatalf("first prompt message must be the system prompt, got %q", captured[0].Role)
	}
	if captured[0].Content != BuildSystemPrompt(testProfile()) {
		t.Fatal("system prompt should be the compiled profile")
	}
	if captured[1].Role != "assistant" || captured[2].Role != "user" {
		t.Fatalf("transcript should follow in order, got %q %q", captured[1].Role, captured[2].Role)
	}
	if captured[2].Content != "你好" {
		t.Fatalf("unexpected user turn %q", captured[2].Content)
	}
}

func TestDialogueEngine_GenerationFailureKeepsUserTurn(t *testing.T) {
	gen := GeneratorFunc(func(ctx context.Context, messages []PromptMessage) (string, error) {
		return "", errors.New("dial tcp: connection refused")
	})
	e := NewDialogueEngine(testProfile(), gen, nil, nil)

	reply, err := e.Send(context.Background(), "在吗？")
	if reply != nil {
		t.Fatal("no reply should be returned on failure")
	}
	var gerr *GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}

	msgs := e.Messages()
	if len(msgs) != 2 {
		t.Fatalf("transcript should keep greeting+user only, got %d", len(msgs))
	}
	if msgs[1].Role != RoleUser {
		t.Fatal("the failed turn's user message must survive")
	}

	// The engine is usable again after a failure.
	e.generator = echoGenerator("回来了")
	if reply, err := e.Send(context.Background(), "再试一次"); err != nil || reply == nil {
		t.Fatalf("send after failure should work, got (%v, %v)", reply, err)
	}
}

func TestDialogueEngine_SingleFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	gen := GeneratorFunc(func(ctx context.Context, messages []PromptMessage) (string, error) {
		close(entered)
		<-release
		return "慢回复", nil
	})
	e := NewDialogueEngine(testProfile(), gen, nil, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := e.Send(context.Background(), "第一条"); err != nil {
			t.Error(err)
		}
	}()

	<-entered
	if !e.Generating() {
		t.Fatal("engine should report an in-flight generation")
	}
	reply, err := e.Send(context.Background(), "第二条")
	if reply != nil || err != nil {
		t.Fatalf("send during flight should be (nil, nil), got (%v, %v)", reply, err)
	}

	close(release)
	wg.Wait()

	if e.Generating() {
		t.Fatal("flag should be released after completion")
	}
	msgs := e.Messages()
	if len(msgs) != 3 {
		t.Fatalf("rejected send must leave no trace, got %d messages", len(msgs))
	}
}

func TestDialogueEngine_FeedbackLastWriteWins(t *testing.T) {
	e := NewDialogueEngine(testProfile(), echoGenerator("回复"), nil, nil)
	reply, _ := e.Send(context.Background(), "你好")

	if !e.Feedback(reply.ID, FeedbackLike) {
		t.Fatal("feedback on an existing message should succeed")
	}
	if !e.Feedback(reply.ID, FeedbackDislike) {
		t.Fatal("re-marking should succeed")
	}

	for _, m := range e.Messages() {
		if m.ID == reply.ID && m.Feedback != FeedbackDislike {
			t.Fatalf("last write should win, got %q", m.Feedback)
		}
	}
}

func TestDialogueEngine_FeedbackUnknownMessage(t *testing.T) {
	store := seedStore(t)
	journal := NewAsyncJournal(NewMemoryJournal(store))
	e := NewDialogueEngine(testProfile(), echoGenerator("回复"), nil, journal)

	if e.Feedback("no_such_id", FeedbackLike) {
		t.Fatal("feedback on an unknown id should report false")
	}
	journal.Stop()

	profile, _ := store.Load()
	if len(profile.Memories.LongTerm) != 2 {
		t.Fatal("no journal event should fire for an unknown id")
	}
}

func TestDialogueEngine_FeedbackWritesJournal(t *testing.T) {
	store := seedStore(t)
	journal := NewAsyncJournal(NewMemoryJournal(store))
	e := NewDialogueEngine(testProfile(), echoGenerator("讲真。"), store, journal)

	reply, _ := e.Send(context.Background(), "嗯？")
	e.Feedback(reply.ID, FeedbackLike)
	e.Feedback(reply.ID, FeedbackDislike)
	journal.Stop()

	// Each click journals independently, re-marking included.
	profile, _ := store.Load()
	if len(profile.Memories.LongTerm) != 4 {
		t.Fatalf("expected 2 seeded + 2 feedback entries, got %d", len(profile.Memories.LongTerm))
	}
	last := profile.Memories.LongTerm[3]
	if !strings.Contains(last, "讲真。") {
		t.Fatalf("journal entry should quote the reply: %q", last)
	}
}

func TestDialogueEngine_FeedbackMemoryReachesNextPrompt(t *testing.T) {
	store := seedStore(t)
	journal := NewAsyncJournal(NewMemoryJournal(store))

	var lastSystem string
	gen := GeneratorFunc(func(ctx context.Context, messages []PromptMessage) (string, error) {
		lastSystem = messages[0].Content
		return "讲真，这很简单。", nil
	})

	profile, _ := store.Load()
	e := NewDialogueEngine(profile, gen, store, journal)

	reply, err := e.Send(context.Background(), "你怎么看？")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(lastSystem, "[Style Reinforcement]") {
		t.Fatal("no reinforcement should exist before any feedback")
	}

	e.Feedback(reply.ID, FeedbackLike)
	journal.Stop() // drain the queued write

	if _, err := e.Send(context.Background(), "再聊聊"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(lastSystem, "[Style Reinforcement]") {
		t.Fatalf("journaled feedback must reach the next prompt: %q", lastSystem)
	}
	if !strings.Contains(lastSystem, "讲真，这很简单。") {
		t.Fatal("the reinforced entry should quote the liked reply")
	}
}

func TestDialogueEngine_StoreFailureFallsBackToSnapshot(t *testing.T) {
	var captured []PromptMessage
	gen := GeneratorFunc(func(ctx context.Context, messages []PromptMessage) (string, error) {
		captured = messages
		return "ok", nil
	})
	e := NewDialogueEngine(testProfile(), gen, failingStore{}, nil)

	if _, err := e.Send(context.Background(), "你好"); err != nil {
		t.Fatal(err)
	}
	if captured[0].Content != BuildSystemPrompt(testProfile()) {
		t.Fatal("store failure should fall back to the held snapshot")
	}
}
