package domain

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/doelab/doe-gateway/internal/models"
	"github.com/doelab/doe-gateway/internal/ports"
)

// AssistantService drives the oracle for both delivery modes: a complete
// answer for search, a token-at-a-time event sequence for chat.
type AssistantService struct {
	oracle ports.OracleService
}

func NewAssistantService(oracle ports.OracleService) *AssistantService {
	return &AssistantService{oracle: oracle}
}

func (s *AssistantService) Search(ctx context.Context, query string) (*models.Answer, error) {
	answer, err := s.oracle.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	if answer.Evidence == nil {
		answer.Evidence = []json.RawMessage{}
	}
	return answer, nil
}

// Stream obtains a complete answer, then hands events to emit one at a time:
// one token event per whitespace-delimited word of the answer text, in order,
// then a single evidence event if the oracle returned evidence. emit is
// expected to deliver each event to the client before the next one is
// produced; the first emit error aborts the stream.
func (s *AssistantService) Stream(ctx context.Context, message string, emit func(models.StreamEvent) error) error {
	answer, err := s.oracle.Query(ctx, message)
	if err != nil {
		return err
	}

	for _, word := range strings.Fields(answer.Text) {
		if err := emit(models.TokenEvent(word)); err != nil {
			return err
		}
	}

	if len(answer.Evidence) > 0 {
		if err := emit(models.EvidenceEvent(answer.Evidence)); err != nil {
			return err
		}
	}

	return nil
}
