package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/helojet/helojet-server/internal/errors"
	"github.com/helojet/helojet-server/internal/http/response"
)

// EnvelopeVersion is the "v" field of every JSON response.
const EnvelopeVersion = response.Version

// EnvelopeTransformer wraps huma responses in the same envelope the plain
// handlers write through the response package.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case response.Envelope:
		return body, nil
	case *APIError:
		return response.WrapError(response.ErrorBody{
			Code:    body.Code,
			Message: body.Message,
			Details: body.Details,
		}), nil
	case *domainerrors.Error:
		return response.WrapError(response.ErrorBody{
			Code:    string(body.Code),
			Message: body.Message,
			Details: body.Details,
		}), nil
	case error:
		code, _ := strconv.Atoi(status)
		return response.WrapError(response.ErrorBody{
			Code:    statusToCode(code),
			Message: body.Error(),
		}), nil
	}

	return response.Wrap(v), nil
}
