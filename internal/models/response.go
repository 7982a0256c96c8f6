package models

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string       `json:"code" example:"PROPOSAL_ALREADY_EXISTS"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError describes one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type DictionaryResponse[T any] struct {
	Items []T `json:"items"`
}
