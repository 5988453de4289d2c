// Package types holds the wire envelopes shared by every API handler.
// Success bodies nest under "data", failures under "error", so clients
// can branch on shape alone.
package types

// SuccessEnvelope wraps every 2xx JSON body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// Success builds the envelope for a 2xx payload.
func Success(data any) SuccessEnvelope {
	return SuccessEnvelope{Data: data}
}

// APIError is the client-facing form of a coded failure. Details carries
// field-level validation output when the code permits it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every non-2xx JSON body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Failure builds the envelope for a coded error response.
func Failure(code, message string, details any) ErrorEnvelope {
	return ErrorEnvelope{Error: APIError{
		Code:    code,
		Message: message,
		Details: details,
	}}
}
