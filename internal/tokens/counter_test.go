package tokens

import "testing"

func TestCounter_Estimate(t *testing.T) {
	c := NewCounter()

	tests := []struct {
		name      string
		model     string
		texts     []string
		minTokens int
		maxTokens int
	}{
		{
			name:      "known model",
			model:     "gpt-4o-mini",
			texts:     []string{"Hola, ¿cómo estás?"},
			minTokens: 3,
			maxTokens: 15,
		},
		{
			name:      "system plus user text",
			model:     "gpt-4o-mini",
			texts:     []string{"Eres un asistente técnico.", "decime qué es un goroutine"},
			minTokens: 8,
			maxTokens: 30,
		},
		{
			name:      "unknown model falls back to an encoding",
			model:     "zen-preview-1",
			texts:     []string{"print(\"hola mundo\")"},
			minTokens: 3,
			maxTokens: 12,
		},
		{
			name:      "empty text",
			model:     "gpt-4o-mini",
			texts:     []string{""},
			minTokens: 0,
			maxTokens: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Estimate(tt.model, tt.texts...)
			if got < tt.minTokens || got > tt.maxTokens {
				t.Errorf("Estimate() = %d, want between %d and %d", got, tt.minTokens, tt.maxTokens)
			}
		})
	}
}

func TestCounter_EstimateIsDeterministic(t *testing.T) {
	c := NewCounter()

	first := c.Estimate("gpt-4o-mini", "el mismo texto dos veces")
	second := c.Estimate("gpt-4o-mini", "el mismo texto dos veces")

	if first != second {
		t.Errorf("Estimate() = %d then %d, want identical counts", first, second)
	}
	if first == 0 {
		t.Error("Estimate() = 0, want a positive count")
	}
}

func TestModelToEncoding(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"gpt-4o-mini", "o200k_base"},
		{"GPT-4O", "o200k_base"},
		{"gpt-4-turbo", "cl100k_base"},
		{"gpt-3.5-turbo", "cl100k_base"},
		{"something-else", "o200k_base"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			if got := modelToEncoding(tt.model); string(got) != tt.want {
				t.Errorf("modelToEncoding(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}
