package composer

import (
	"context"
	"testing"

	"zenbot/internal/api/openai"
	"zenbot/internal/domain"
)

// fakeClient records the last request and answers with a fixed response or
// error.
type fakeClient struct {
	lastReq *openai.ChatCompletionRequest
	resp    *openai.ChatCompletionResponse
	err     error
}

func (f *fakeClient) CreateChatCompletion(ctx context.Context, req *openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func reply(content string) *openai.ChatCompletionResponse {
	return &openai.ChatCompletionResponse{
		Model: "gpt-4o-mini",
		Choices: []openai.Choice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: content}},
		},
	}
}

func TestCompose_TrimsReply(t *testing.T) {
	client := &fakeClient{resp: reply("  hola, ¿en qué te ayudo?\n")}
	c := NewConversational(client, "gpt-4o-mini", nil)

	got := c.Compose(context.Background(), "hola")
	if got != "hola, ¿en qué te ayudo?" {
		t.Errorf("Compose() = %q, want trimmed reply", got)
	}

	if client.lastReq.Messages[1].Content != "hola" {
		t.Errorf("user message = %q, want %q", client.lastReq.Messages[1].Content, "hola")
	}
}

func TestCompose_Temperatures(t *testing.T) {
	tests := []struct {
		name string
		c    *Composer
		want float32
	}{
		{"conversational", NewConversational(&fakeClient{resp: reply("x")}, "gpt-4o-mini", nil), 0.4},
		{"code", NewCode(&fakeClient{resp: reply("x")}, "gpt-4o-mini", nil), 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.c.Compose(context.Background(), "algo")

			client := tt.c.client.(*fakeClient)
			if client.lastReq.Temperature == nil || *client.lastReq.Temperature != tt.want {
				t.Errorf("temperature = %v, want %v", client.lastReq.Temperature, tt.want)
			}
		})
	}
}

func TestCompose_BlankInputDefaults(t *testing.T) {
	tests := []struct {
		name  string
		build func(client CompletionClient) *Composer
		input string
		want  string
	}{
		{
			name:  "conversational blank",
			build: func(cl CompletionClient) *Composer { return NewConversational(cl, "gpt-4o-mini", nil) },
			input: "   ",
			want:  "(mensaje vacío)",
		},
		{
			name:  "code blank",
			build: func(cl CompletionClient) *Composer { return NewCode(cl, "gpt-4o-mini", nil) },
			input: "",
			want:  "python: imprimir Hola Mundo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{resp: reply("ok")}
			c := tt.build(client)

			c.Compose(context.Background(), tt.input)

			if got := client.lastReq.Messages[1].Content; got != tt.want {
				t.Errorf("user message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompose_ProviderFailureFallsBack(t *testing.T) {
	provErr := domain.ErrProvider("quota exceeded")

	tests := []struct {
		name  string
		build func(client CompletionClient) *Composer
		want  string
	}{
		{
			name:  "conversational fallback",
			build: func(cl CompletionClient) *Composer { return NewConversational(cl, "gpt-4o-mini", nil) },
			want:  ConversationalFallback,
		},
		{
			name:  "code fallback",
			build: func(cl CompletionClient) *Composer { return NewCode(cl, "gpt-4o-mini", nil) },
			want:  CodeFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.build(&fakeClient{err: provErr})

			if got := c.Compose(context.Background(), "hacé algo"); got != tt.want {
				t.Errorf("Compose() = %q, want fallback %q", got, tt.want)
			}
		})
	}
}

func TestCompose_NoChoicesFallsBack(t *testing.T) {
	client := &fakeClient{resp: &openai.ChatCompletionResponse{Model: "gpt-4o-mini"}}
	c := NewConversational(client, "gpt-4o-mini", nil)

	if got := c.Compose(context.Background(), "hola"); got != ConversationalFallback {
		t.Errorf("Compose() = %q, want fallback", got)
	}
}

func TestCompose_SystemPromptsDiffer(t *testing.T) {
	conv := &fakeClient{resp: reply("x")}
	code := &fakeClient{resp: reply("x")}

	NewConversational(conv, "gpt-4o-mini", nil).Compose(context.Background(), "a")
	NewCode(code, "gpt-4o-mini", nil).Compose(context.Background(), "a")

	convSystem := conv.lastReq.Messages[0].Content
	codeSystem := code.lastReq.Messages[0].Content

	if convSystem == codeSystem {
		t.Error("both composers sent the same system prompt")
	}
	if convSystem == "" || codeSystem == "" {
		t.Error("system prompt missing from request")
	}
}
