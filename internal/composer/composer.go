// Package composer produces reply text from the completion provider. Each
// composer pairs a fixed system prompt and temperature with a fallback
// string, so a provider failure degrades the reply instead of failing the
// request.
package composer

import (
	"context"
	"log/slog"
	"strings"

	"zenbot/internal/api/openai"
	"zenbot/internal/tokens"
)

const conversationalPrompt = "Eres Asistente Zen, un ayudante técnico amable y directo.\n" +
	"Responde en español, con precisión y en no más de 5–8 líneas salvo que te pidan más.\n" +
	"Cuando no tengas certeza, indícalo y sugiere una verificación simple.\n"

const codePrompt = "Eres un generador de snippets de código.\n" +
	"El usuario puede pedir código en Python, Bash, JavaScript, Swift, etc.\n" +
	"Responde SOLO con un bloque de código dentro de triple backticks.\n" +
	"No incluyas explicaciones ni texto fuera del bloque de código.\n"

const (
	// ConversationalFallback replaces the reply when the provider fails.
	ConversationalFallback = "No pude responder con IA ahora. Intenta de nuevo en unos segundos."

	// CodeFallback is the fenced block returned when code generation fails.
	CodeFallback = "```txt\nNo pude generar el código ahora. Reintenta en unos segundos.\n```"

	conversationalBlank = "(mensaje vacío)"
	codeBlank           = "python: imprimir Hola Mundo"
)

// CompletionClient is the slice of the OpenAI client the composers use.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req *openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
}

// Composer turns user text into a reply using a fixed system prompt and
// sampling temperature.
type Composer struct {
	client      CompletionClient
	model       string
	system      string
	temperature float32
	blankInput  string
	fallback    string
	counter     *tokens.Counter
	logger      *slog.Logger
}

// NewConversational creates the free-form assistant composer.
func NewConversational(client CompletionClient, model string, logger *slog.Logger) *Composer {
	return newComposer(client, model, logger, conversationalPrompt, 0.4, conversationalBlank, ConversationalFallback)
}

// NewCode creates the code-snippet composer.
func NewCode(client CompletionClient, model string, logger *slog.Logger) *Composer {
	return newComposer(client, model, logger, codePrompt, 0.2, codeBlank, CodeFallback)
}

func newComposer(client CompletionClient, model string, logger *slog.Logger, system string, temperature float32, blankInput, fallback string) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		client:      client,
		model:       model,
		system:      system,
		temperature: temperature,
		blankInput:  blankInput,
		fallback:    fallback,
		counter:     tokens.NewCounter(),
		logger:      logger,
	}
}

// Compose returns the model's reply to userText, trimmed. It never returns
// an error: provider failures are logged and replaced by the composer's
// fallback text. Blank input is replaced by the composer's default prompt
// before the call.
func (c *Composer) Compose(ctx context.Context, userText string) string {
	text := strings.TrimSpace(userText)
	if text == "" {
		text = c.blankInput
	}

	temperature := c.temperature
	req := &openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: "system", Content: c.system},
			{Role: "user", Content: text},
		},
		Temperature: &temperature,
	}

	c.logger.Debug("composing reply",
		slog.String("model", c.model),
		slog.Int("prompt_tokens_est", c.counter.Estimate(c.model, c.system, text)),
	)

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Warn("completion failed, using fallback",
			slog.String("model", c.model),
			slog.String("error", err.Error()),
		)
		return c.fallback
	}

	if len(resp.Choices) == 0 {
		c.logger.Warn("completion returned no choices", slog.String("model", resp.Model))
		return c.fallback
	}

	c.logger.Debug("completion usage",
		slog.String("model", resp.Model),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
