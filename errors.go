package personasdk

import "fmt"

// ──────────────────────────────────────────────
// Error taxonomy
// ──────────────────────────────────────────────

// Card-level validation messages shown next to the current card.
const (
	MsgTextRequired      = "请填写内容后再继续"
	MsgSelectionRequired = "请选择一个选项"
	MsgAtLeastOne        = "请至少选择一个选项"
)

// GenerationFallbackMessage is the single user-visible string for any
// generation-service connectivity failure. Raw transport errors never
// reach the transcript.
const GenerationFallbackMessage = "边缘节点连接失败，请稍后再试。"

// ValidationError is a recoverable card-level input error. It blocks only
// the card it belongs to.
type ValidationError struct {
	CardID  int
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("card %d: %s", e.CardID, e.Message)
}

// PersistenceError wraps a failed read or write against the profile store.
// Journal and synthesis paths treat it as best-effort: logged, never fatal.
type PersistenceError struct {
	Op  string // "load", "save"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("profile store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// GenerationError wraps a network/API failure from the generation service.
// Surfaces to users only as GenerationFallbackMessage.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
