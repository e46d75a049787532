package types

// APIResponse represents a standardized API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError represents an error in the API response
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewSuccessResponse creates a new successful API response
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates a new error API response
func NewErrorResponse(code, message string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
	}
}

// Common error codes. All four failure kinds of the app surface here:
// device/permission failures arrive as unsupported or invalid capture payloads,
// AI gateway failures as AI_REQUEST_FAILED, and corrupt persisted state never
// reaches the API at all (it degrades to empty collections at startup).
const (
	ErrorCodeValidation       = "VALIDATION_ERROR"
	ErrorCodeNotFound         = "NOT_FOUND"
	ErrorCodeInternal         = "INTERNAL_ERROR"
	ErrorCodeInvalidRequest   = "INVALID_REQUEST"
	ErrorCodeUnsupportedMedia = "UNSUPPORTED_MEDIA_TYPE"
	ErrorCodeAIRequestFailed  = "AI_REQUEST_FAILED"
)
