package models

// OutboundMessageRequest represents requests to send a message manually via the API.
type OutboundMessageRequest struct {
	To         string `json:"to" binding:"required"`
	Message    string `json:"message" binding:"required"`
	PreviewURL bool   `json:"preview_url"`
}

// NewItemRequest is the body accepted by POST /items. SellIn and Quality are
// pointers so a missing field is rejected while an explicit 0 is accepted.
type NewItemRequest struct {
	Name    string `json:"name" binding:"required"`
	SellIn  *int   `json:"sell_in" binding:"required"`
	Quality *int   `json:"quality" binding:"required"`
}
