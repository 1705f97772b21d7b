package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is the wire format version clients check before parsing.
const envelopeVersion = 1

// successEnvelope wraps successful response bodies.
type successEnvelope struct {
	V       int  `json:"v"`
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// simpleErrorEnvelope wraps errors that carry only a message.
type simpleErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// detailedErrorEnvelope wraps errors with a machine-readable code.
type detailedErrorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps every response body in the versioned envelope
// clients expect. The version field must stay named "v"; renaming it breaks
// clients silently.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code == "" && apiErr.Details == nil {
			return simpleErrorEnvelope{
				V:     envelopeVersion,
				Error: apiErr.Message,
			}, nil
		}
		return detailedErrorEnvelope{
			V:       envelopeVersion,
			Code:    apiErr.Code,
			Message: apiErr.Message,
			Details: apiErr.Details,
		}, nil
	}

	if err, ok := v.(error); ok {
		return simpleErrorEnvelope{
			V:     envelopeVersion,
			Error: err.Error(),
		}, nil
	}

	code, convErr := strconv.Atoi(status)
	if convErr != nil {
		code = 200
	}

	return successEnvelope{
		V:       envelopeVersion,
		Success: code < 400,
		Data:    v,
	}, nil
}
