package service

import (
	"ModelFlow/config"
	"ModelFlow/utils"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

var embeddingClient = &http.Client{}

var embedLimiter *rate.Limiter
var embedLimiterOnce sync.Once

func getEmbedLimiter() *rate.Limiter {
	embedLimiterOnce.Do(func() {
		burst := config.AppConfig.EmbeddingBurst
		if burst <= 0 {
			burst = 1
		}
		limit := config.AppConfig.EmbeddingRate
		if limit <= 0 {
			embedLimiter = rate.NewLimiter(rate.Inf, burst)
			return
		}
		embedLimiter = rate.NewLimiter(rate.Limit(limit), burst)
	})
	return embedLimiter
}

type embeddingRequest struct {
	Input string `json:"input"`
	Model string `json:"model"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// GenerateEmbedding calls the external embedding API for the given text.
func GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	apiURL := config.AppConfig.EmbeddingAPIURL
	if apiURL == "" {
		return nil, fmt.Errorf("embedding api not configured: %w", utils.ErrUpstream)
	}
	if err := getEmbedLimiter().Wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(embeddingRequest{
		Input: text,
		Model: config.AppConfig.EmbeddingModel,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.AppConfig.ExternalHTTPTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if key := config.AppConfig.EmbeddingAPIKey; key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := embeddingClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", utils.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding api returned %d: %w", resp.StatusCode, utils.ErrUpstream)
	}

	var parsed embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", utils.ErrUpstream)
	}
	if len(parsed.Data) == 0 || len(parsed.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding response: %w", utils.ErrUpstream)
	}
	return parsed.Data[0].Embedding, nil
}
