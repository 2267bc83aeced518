package models

// MessageResponse is the JSON body of confirmations and errors.
// Stack is filled only outside production mode.
type MessageResponse struct {
	Message string `json:"message"`
	Stack   string `json:"stack,omitempty"`
}
