package stt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedTranscribe(t *testing.T) {
	f := Fixed{Prompt: "How do you handle disagreements with team members?"}

	text, conf, err := f.Transcribe(context.Background(), []byte{1, 2, 3}, "en")
	require.NoError(t, err)
	assert.Contains(t, text, "How do you handle disagreements with team members?")
	assert.Equal(t, 1.0, conf)

	_, _, err = f.Transcribe(context.Background(), nil, "en")
	assert.Error(t, err)
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "en-US", NormalizeLanguage(""))
	assert.Equal(t, "en-US", NormalizeLanguage("en"))
	assert.Equal(t, "zu-ZA", NormalizeLanguage("zu"))
	assert.Equal(t, "fr-FR", NormalizeLanguage("fr-FR"))
}
