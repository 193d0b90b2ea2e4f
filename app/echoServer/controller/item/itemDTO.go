package item

type CreateItemReq struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId"`
}

type UpdateItemReq struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentReq carries no validate tag on Text: the service owns the
// empty-comment rule and reports it as an invalid request, not a
// bind-time failure.
type CreateCommentReq struct {
	Text string `json:"text"`
}
