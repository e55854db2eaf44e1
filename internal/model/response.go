package model

// MessageResponse is the body of every mutating endpoint.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// NewCreatedResponse carries the identifier of the record just written.
func NewCreatedResponse(message, id string) MessageResponse {
	return MessageResponse{Message: message, ID: id}
}
