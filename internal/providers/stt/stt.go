package stt

import (
	"context"
	"fmt"
)

// Provider transcribes a recorded interview answer.
type Provider interface {
	Transcribe(ctx context.Context, audio []byte, language string) (text string, confidence float64, err error)
	Close() error
}

// Fixed returns a canned transcription; used when no speech backend is configured.
type Fixed struct {
	// Prompt is echoed into the transcription, typically the question being answered.
	Prompt string
}

func (f Fixed) Transcribe(_ context.Context, audio []byte, _ string) (string, float64, error) {
	if len(audio) == 0 {
		return "", 0, fmt.Errorf("empty audio")
	}
	return fmt.Sprintf("This is a simulated answer to the question: %q. In a real implementation, this would be the actual transcription of your spoken answer.", f.Prompt), 1, nil
}

func (Fixed) Close() error { return nil }

// NormalizeLanguage maps short codes to BCP-47 tags the recognizer expects.
func NormalizeLanguage(v string) string {
	switch v {
	case "", "en", "en-US":
		return "en-US"
	case "af", "af-ZA":
		return "af-ZA"
	case "zu", "zu-ZA":
		return "zu-ZA"
	default:
		return v
	}
}
