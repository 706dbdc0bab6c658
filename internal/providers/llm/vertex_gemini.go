package llm

import (
	"context"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

type VertexGemini struct {
	client    *vertexgenai.Client
	modelName string
}

func NewVertexGemini(ctx context.Context, projectID, location, modelName, credentialsFile string) (*VertexGemini, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	c, err := vertexgenai.NewClient(ctx, projectID, location, opts...)
	if err != nil {
		return nil, err
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &VertexGemini{client: c, modelName: modelName}, nil
}

func (v *VertexGemini) Name() string { return "Vertex AI" }

func (v *VertexGemini) Close() error { return v.client.Close() }

// Model returns a fresh model handle; handles carry per-call settings and are not shared.
func (v *VertexGemini) Model() *vertexgenai.GenerativeModel {
	return v.client.GenerativeModel(v.modelName)
}

func (v *VertexGemini) Complete(ctx context.Context, system string, msgs []Message, opts Options) (string, error) {
	if len(msgs) == 0 {
		return "", ErrEmptyCompletion
	}

	m := v.Model()
	if opts.Temperature > 0 {
		m.SetTemperature(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(opts.MaxTokens))
	}
	if system != "" {
		m.SystemInstruction = &vertexgenai.Content{Parts: []vertexgenai.Part{vertexgenai.Text(system)}}
	}

	cs := m.StartChat()
	for _, msg := range msgs[:len(msgs)-1] {
		role := "user"
		if msg.Role == RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &vertexgenai.Content{
			Role:  role,
			Parts: []vertexgenai.Part{vertexgenai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, vertexgenai.Text(msgs[len(msgs)-1].Content))
	if err != nil {
		return "", err
	}
	return ResponseText(resp), nil
}

// ResponseText concatenates the text parts of the first candidate.
func ResponseText(resp *vertexgenai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(vertexgenai.Text); ok {
				b.WriteString(string(t))
			}
		}
		break
	}
	return b.String()
}
