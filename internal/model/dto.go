package model

// SubmitResponse is the normalized shape the relay returns for both
// upload and text submissions, success or failure.
type SubmitResponse struct {
	Success  bool   `json:"success"`
	ReviewID string `json:"reviewId,omitempty"`
	Filename string `json:"filename,omitempty"`
	Message  string `json:"message,omitempty"`
}

type TextReviewRequest struct {
	TextContent string `json:"textContent"`
	Title       string `json:"title,omitempty"`
}

type StatusResponse struct {
	ReviewID string        `json:"reviewId"`
	Status   ReviewStatus  `json:"status"`
	Progress int           `json:"progress,omitempty"`
	Result   *ReviewResult `json:"result,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type ReviewListResponse struct {
	Success    bool             `json:"success"`
	Reviews    []ReviewListItem `json:"reviews"`
	Pagination Pagination       `json:"pagination"`
	Message    string           `json:"message,omitempty"`
}

type DeleteResponse struct {
	Success  bool   `json:"success"`
	ReviewID string `json:"reviewId,omitempty"`
	Message  string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
