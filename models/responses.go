package models

// ErrorResponse is the uniform JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a plain informational JSON body.
type MessageResponse struct {
	Message string `json:"message"`
}
