// Package llm connects the dialogue engine to an OpenAI-compatible
// chat-completion endpoint. The default target is the DashScope
// compatible-mode gateway running deepseek-v3, matching the edge
// deployment, but any endpoint speaking the same protocol works.
package llm

import (
	"context"
	"log"
	"math"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	personasdk "github.com/edgemindTech/edge-persona-sdk-go"
)

// ──────────────────────────────────────────────
// Defaults
// ──────────────────────────────────────────────

const (
	// DefaultBaseURL is the DashScope OpenAI-compatible gateway.
	DefaultBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

	// DefaultModel is the chat model used when none is configured.
	DefaultModel = "deepseek-v3"

	// DefaultTemperature keeps replies lively without drifting off-persona.
	DefaultTemperature = 0.8

	// DefaultTimeout bounds a single completion round trip.
	DefaultTimeout = 30 * time.Second

	// thinkingPlaceholder is returned when the endpoint answers with an
	// empty choice list or blank content instead of failing outright.
	thinkingPlaceholder = "思考中..."
)

// ──────────────────────────────────────────────
// OpenAIGenerator
// ──────────────────────────────────────────────

// OpenAIGenerator implements personasdk.Generator against any
// OpenAI-compatible chat-completion API.
//
// Usage:
//
//	gen := llm.NewOpenAIGenerator(llm.GeneratorConfig{
//	    APIKey: os.Getenv("EDGE_PERSONA_API_KEY"),
//	})
//	engine := personasdk.NewDialogueEngine(profile, gen, store, journal)
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// GeneratorConfig configures the generator. Zero values fall back to
// the package defaults; only APIKey is required. Temperature is a pointer
// so an explicit 0.0 (deterministic sampling) stays distinguishable from
// unset.
type GeneratorConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature *float64
	Timeout     time.Duration
}

// NewOpenAIGenerator creates a generator from the given config.
func NewOpenAIGenerator(cfg GeneratorConfig) *OpenAIGenerator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	temperature := float64(DefaultTemperature)
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: float32(temperature),
		timeout:     cfg.Timeout,
	}
}

// NewOpenAIGeneratorFromConfig builds a generator from the SDK-level
// generation settings loaded via personasdk.LoadConfig. The settings are
// taken as-is: LoadConfig has already applied the file defaults, so a zero
// temperature there means zero, not unset.
func NewOpenAIGeneratorFromConfig(cfg personasdk.GenerationConfig) *OpenAIGenerator {
	return NewOpenAIGenerator(GeneratorConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: &cfg.Temperature,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
}

// Generate sends the full prompt transcript and returns the assistant
// reply. Transport and API failures come back as *personasdk.GenerationError.
func (g *OpenAIGenerator) Generate(ctx context.Context, messages []personasdk.PromptMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := g.temperature
	if temperature == 0 {
		// go-openai omits a zero temperature from the request body; the
		// smallest positive value keeps it on the wire.
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: temperature,
		Stream:      false,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("[OpenAIGenerator] completion failed | model=%s err=%v", g.model, err)
		return "", &personasdk.GenerationError{Err: err}
	}

	if len(resp.Choices) == 0 {
		log.Printf("[OpenAIGenerator] empty choices | model=%s", g.model)
		return thinkingPlaceholder, nil
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return thinkingPlaceholder, nil
	}
	return content, nil
}

var _ personasdk.Generator = (*OpenAIGenerator)(nil)
