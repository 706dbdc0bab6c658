package llm

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// OpenAICompatible talks to any chat-completions API with the OpenAI wire
// format: Groq (https://api.groq.com/openai/v1) and OpenAI itself.
type OpenAICompatible struct {
	name string
	llm  *openai.LLM
}

func NewOpenAICompatible(name, apiKey, baseURL, model, embeddingModel string) (*OpenAICompatible, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(strings.TrimRight(baseURL, "/")))
	}
	if embeddingModel != "" {
		opts = append(opts, openai.WithEmbeddingModel(embeddingModel))
	}

	c, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}
	return &OpenAICompatible{name: name, llm: c}, nil
}

func (p *OpenAICompatible) Name() string { return p.name }

func (p *OpenAICompatible) Close() error { return nil }

func (p *OpenAICompatible) Complete(ctx context.Context, system string, msgs []Message, opts Options) (string, error) {
	content := make([]llms.MessageContent, 0, len(msgs)+1)
	if system != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, system))
	}
	for _, m := range msgs {
		role := llms.ChatMessageTypeHuman
		if m.Role == RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		content = append(content, llms.TextParts(role, m.Content))
	}

	var callOpts []llms.CallOption
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}

	resp, err := p.llm.GenerateContent(ctx, content, callOpts...)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Content, nil
}

func (p *OpenAICompatible) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return p.llm.CreateEmbedding(ctx, texts)
}
