package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	vertexgenai "cloud.google.com/go/vertexai/genai"
	"github.com/yoockh/jobmate/internal/prompts"
	"github.com/yoockh/jobmate/internal/providers/llm"
)

// Vertex asks Gemini to read the document directly from its URI.
type Vertex struct {
	gemini *llm.VertexGemini
}

func NewVertex(g *llm.VertexGemini) *Vertex { return &Vertex{gemini: g} }

func (v *Vertex) Extract(ctx context.Context, fileURL string) (*Document, error) {
	m := v.gemini.Model()
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0)

	resp, err := m.GenerateContent(ctx,
		vertexgenai.FileData{MIMEType: mimeFor(fileURL), FileURI: fileURL},
		vertexgenai.Text(prompts.CVExtraction()),
	)
	if err != nil {
		return nil, err
	}
	return ParseDocument(llm.ResponseText(resp))
}

// ParseDocument decodes the model's JSON answer, tolerating markdown fences.
func ParseDocument(raw string) (*Document, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var doc Document
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &doc); err != nil {
		return nil, fmt.Errorf("decode extraction: %w", err)
	}
	if doc.Data.Skills == nil {
		doc.Data.Skills = []string{}
	}
	return &doc, nil
}

func mimeFor(u string) string {
	switch strings.ToLower(path.Ext(u)) {
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/pdf"
	}
}
