package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doelab/doe-gateway/internal/models"
	"github.com/doelab/doe-gateway/internal/ports"
)

type OracleClient struct {
	url    string
	apiKey string
	client *http.Client
}

func NewOracleClient(url, apiKey string) ports.OracleService {
	return &OracleClient{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{},
	}
}

// sanitize: strip invalid UTF-8 before it reaches the backend
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "")
}

type oracleRequest struct {
	Query string `json:"query"`
}

type oracleResponse struct {
	Text     string            `json:"text"`
	Evidence []json.RawMessage `json:"evidence"`
	Error    string            `json:"error"`
}

func (o *OracleClient) Query(ctx context.Context, text string) (*models.Answer, error) {
	j, err := json.Marshal(oracleRequest{Query: sanitize(text)})
	if err != nil {
		return nil, err
	}

	var lastErr error

	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, "POST", o.url, bytes.NewReader(j))
		if err != nil {
			return nil, err
		}

		req.Header.Set("Content-Type", "application/json")
		if o.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+o.apiKey)
		}

		resp, err := o.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("oracle request: %w", err)
			continue
		}

		rawResp, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != 200 {
			return nil, fmt.Errorf("oracle http %d", resp.StatusCode)
		}

		var parsed oracleResponse
		if err := json.Unmarshal(rawResp, &parsed); err != nil {
			lastErr = fmt.Errorf("oracle response: %w", err)
			continue
		}

		if parsed.Error != "" {
			return nil, fmt.Errorf("oracle: %s", parsed.Error)
		}

		return &models.Answer{
			Text:     parsed.Text,
			Evidence: parsed.Evidence,
		}, nil
	}

	return nil, fmt.Errorf("oracle failed after retries: %w", lastErr)
}
