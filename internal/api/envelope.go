package api

import (
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/chromafy/chromafy-server/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in the versioned envelope.
// Error bodies (*APIError, *huma.ErrorModel) become error envelopes; everything
// else is success data.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case response.SuccessEnvelope, response.ErrorEnvelope, *response.SuccessEnvelope, *response.ErrorEnvelope:
		return v, nil
	case *APIError:
		code := body.Code
		if code == "" {
			code = statusToCode(parseStatus(status))
		}
		return response.WrapError(body.Message, code, body.Details), nil
	case *huma.ErrorModel:
		var details any
		if len(body.Errors) > 0 {
			details = body.Errors
		}
		return response.WrapError(body.Detail, statusToCode(body.Status), details), nil
	}

	if n := parseStatus(status); n >= http.StatusBadRequest {
		return response.WrapError(http.StatusText(n), statusToCode(n), v), nil
	}
	return response.Wrap(v), nil
}

func parseStatus(status string) int {
	n, err := strconv.Atoi(status)
	if err != nil {
		return 0
	}
	return n
}
