package fortiadc

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/lexfrei/go-fortiadc/observability"
)

// Response is the raw outcome of a request: status code, headers, and body,
// uninterpreted. Envelope handling happens separately in HandleResponse so
// callers that want the raw bytes keep them.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Result is an unwrapped response envelope.
//
// Exactly one of three shapes comes back: a success with Payload set, an
// application error with Code and ErrorMessage set, or a malformed envelope
// (no "payload" key) with only IsError set.
type Result struct {
	// IsError reports whether the envelope carried an application error.
	IsError bool

	// Code is the vendor error code when the payload was a negative
	// integer, zero otherwise.
	Code int

	// ErrorMessage is the catalog-resolved description of Code.
	ErrorMessage string

	// Payload is the raw success payload.
	Payload json.RawMessage
}

// Err converts an error Result into a typed error. It returns nil for
// success results, so callers can unconditionally `return result.Err()`.
func (r Result) Err() error {
	if !r.IsError {
		return nil
	}
	if r.Code != 0 {
		return NewAPIError(r.Code, r.ErrorMessage)
	}
	return errors.New("response envelope carried no payload")
}

// HandleResponse parses a response body as the vendor envelope.
//
// A missing "payload" key is an error with no code. A negative-integer
// payload is a vendor error whose message resolves through the error-code
// catalog. Anything else is a success and the payload comes back raw.
// A body that is not a JSON object fails outright.
func (c *Client) HandleResponse(ctx context.Context, resp *Response) (Result, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return Result{}, errors.Wrap(err, "decode response envelope")
	}

	payload, ok := envelope["payload"]
	if !ok {
		return Result{IsError: true}, nil
	}

	if code, isCode := negativeCode(payload); isCode {
		message := c.ErrorMessage(ctx, code)
		c.logger.Error("appliance returned error payload",
			observability.Field{Key: "code", Value: code},
			observability.Field{Key: "message", Value: message},
		)
		c.metrics.RecordError("handle_response", "ApplianceError")

		return Result{IsError: true, Code: code, ErrorMessage: message}, nil
	}

	return Result{Payload: payload}, nil
}

// negativeCode reports whether raw is a negative JSON integer and returns
// its value. Strings, floats, and non-negative numbers do not count.
func negativeCode(raw json.RawMessage) (int, bool) {
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "-") {
		return 0, false
	}

	code, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}

	return code, true
}
