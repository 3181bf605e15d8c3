package dto

import "ModelFlow/model"

// UploadModelResponse is returned after a model submission.
type UploadModelResponse struct {
	ModelID uint64 `json:"model_id"`
	Status  string `json:"status"`
}

// DownloadResponse carries a signed download link.
type DownloadResponse struct {
	DownloadURL string `json:"download_url"`
	ExpiresIn   int    `json:"expires_in"`
}

// LikeResponse reports the like state after a like or unlike.
type LikeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// ModelListResponse is a page of approved models.
type ModelListResponse struct {
	Models []model.Model `json:"models"`
	Total  int64         `json:"total"`
}

// BalanceResponse summarizes a user's earnings position. Amounts in cents.
type BalanceResponse struct {
	AvailableBalance   int64 `json:"available_balance"`
	ReleasedEarnings   int64 `json:"released_earnings"`
	HeldEarnings       int64 `json:"held_earnings"`
	WithdrawnAmount    int64 `json:"withdrawn_amount"`
	PendingWithdrawals int64 `json:"pending_withdrawals"`
}

// AutomationSearchResult is one semantic-search hit.
type AutomationSearchResult struct {
	Automation model.Automation `json:"automation"`
	Score      float64          `json:"score"`
}
