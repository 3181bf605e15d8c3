package service

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"ModelFlow/utils"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultSearchLimit caps semantic-search results when no limit is given.
const DefaultSearchLimit = 5

// CosineSimilarity returns the cosine of the angle between two vectors, or 0
// for mismatched or zero vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// SearchAutomations ranks enabled automations by similarity to the query.
// Returns at most limit results, highest score first.
func SearchAutomations(ctx context.Context, query string, limit int) ([]dto.AutomationSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is required: %w", utils.ErrBadRequest)
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	queryEmbedding, err := GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	var automations []model.Automation
	if err := repo.Db.
		Where("enabled = ? AND embedding <> ''", true).
		Find(&automations).Error; err != nil {
		return nil, err
	}

	results := make([]dto.AutomationSearchResult, 0, len(automations))
	for _, automation := range automations {
		var embedding []float64
		if err := json.Unmarshal([]byte(automation.Embedding), &embedding); err != nil {
			continue
		}
		score := CosineSimilarity(queryEmbedding, embedding)
		automation.Workflow = "" // 搜索结果不回传工作流原文
		results = append(results, dto.AutomationSearchResult{
			Automation: automation,
			Score:      score,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
