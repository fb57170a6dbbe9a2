package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SaplingClient scores recipe text against the Sapling AI-detection API.
// A nil client disables detection.
type SaplingClient struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewSaplingClient(apiURL, apiKey string) *SaplingClient {
	if apiKey == "" {
		return nil
	}
	return &SaplingClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

type saplingRequest struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

type saplingResponse struct {
	Score float64 `json:"score"`
}

// DetectAI returns the probability [0,1] that text is machine-generated.
func (c *SaplingClient) DetectAI(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(saplingRequest{Key: c.apiKey, Text: text})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("sapling request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("sapling returned status %d", resp.StatusCode)
	}

	var parsed saplingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode sapling response: %w", err)
	}
	return parsed.Score, nil
}
