package request

// CreateRequestReq: the empty-description rule belongs to the service,
// which reports it as a validation failure.
type CreateRequestReq struct {
	Description string `json:"description"`
}
