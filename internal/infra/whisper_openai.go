package infra

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/doelab/doe-gateway/internal/ports"
)

// WhisperSTTService recognizes speech through an OpenAI-compatible
// transcription endpoint, typically a locally hosted whisper server.
type WhisperSTTService struct {
	client *openai.Client
	model  string
}

func NewWhisperSTTService(baseURL, apiKey, model string) ports.STTService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperSTTService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *WhisperSTTService) Transcribe(ctx context.Context, filePath string) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.model,
		FilePath: filePath,
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}
	return resp.Text, nil
}
