package dto

type RegisterRequest struct {
	Username      string `json:"username" binding:"required"`
	FirstPassword string `json:"first-password" binding:"required"`
	LastPassword  string `json:"second-password" binding:"required"`
	Email         string `json:"email" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ModelUploadForm carries the multipart fields of a model upload. The file
// itself (zip uploads) arrives as the "file" form part.
type ModelUploadForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description" binding:"required"`
	Features    string `form:"features"`
	UseCases    string `form:"use_cases"`
	Setup       string `form:"setup"`
	Tags        string `form:"tags" binding:"required"`
	Price       int64  `form:"price"`
	ImgURL      string `form:"img_url"`
	UploadType  string `form:"upload_type" binding:"required"`
	DriveLink   string `form:"drive_link"`
}

type ReviewModelRequest struct {
	Action          string `json:"action" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

type WithdrawCreateRequest struct {
	PaypalEmail string `json:"paypal_email" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
}

type WithdrawApproveRequest struct {
	RequestID uint64 `json:"request_id" binding:"required"`
}

type WithdrawRejectRequest struct {
	RequestID uint64 `json:"request_id" binding:"required"`
	Reason    string `json:"reason"`
}

type NotificationIDsRequest struct {
	NotificationIDs []uint64 `json:"notification_ids" binding:"required"`
}

type AutomationUploadRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Workflow    string `json:"workflow" binding:"required"`
}

type AutomationUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Workflow    *string `json:"workflow"`
}

type AutomationToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type AutomationSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type AutomationExecuteRequest struct {
	Inputs map[string]interface{} `json:"inputs"`
}
