package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// FieldError describes a single invalid field in a submission
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries every field violation found in a request so
// the caller can surface them all at once
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// NotFoundResponse is the empty-state body returned when a looked-up record
// does not exist. Absence is a valid outcome, not a store failure.
type NotFoundResponse struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
}

// HealthCheckResponse returns the health check response struct, stating the api is alive
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
